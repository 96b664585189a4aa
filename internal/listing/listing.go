// Package listing shapes API responses for display.
package listing

import (
	"sort"
	"strings"

	"github.com/wolfeidau/devmarket/internal/models"
)

// BusinessJobs is the set of jobs posted by one business.
type BusinessJobs struct {
	Business models.BusinessSummary
	Jobs     []models.Job
}

// GroupJobsByBusiness groups jobs by the business that posted them, ordered by
// business id. A job whose business is only referenced by client_id is matched
// against list.Clients. Jobs with no known business are skipped.
func GroupJobsByBusiness(list models.JobList) []BusinessJobs {
	known := make(map[int64]models.BusinessSummary, len(list.Clients))
	for _, c := range list.Clients {
		known[c.ID] = c
	}

	groups := make(map[int64]*BusinessJobs)
	for _, job := range list.Jobs {
		var business models.BusinessSummary
		switch {
		case job.Client != nil && job.Client.ID != 0:
			business = *job.Client
		case job.ClientID != 0:
			b, ok := known[job.ClientID]
			if !ok {
				continue
			}
			business = b
		default:
			continue
		}

		g, ok := groups[business.ID]
		if !ok {
			g = &BusinessJobs{Business: business}
			groups[business.ID] = g
		}
		g.Jobs = append(g.Jobs, job)
	}

	out := make([]BusinessJobs, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Business.ID < out[j].Business.ID
	})

	return out
}

// Group is a named bucket of users.
type Group struct {
	Name  string
	Users []models.User
}

// GroupDevelopersByProfession buckets developers by profession. Developers
// without one land in models.NotSpecified.
func GroupDevelopersByProfession(devs []models.User) []Group {
	return groupBy(devs, models.User.Profession)
}

// GroupClientsByCategory buckets businesses by category. Businesses without
// one land in models.NotSpecified.
func GroupClientsByCategory(clients []models.User) []Group {
	return groupBy(clients, models.User.Category)
}

// groupBy keeps input order within a bucket, buckets are sorted by name with
// models.NotSpecified last.
func groupBy(users []models.User, key func(models.User) string) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, u := range users {
		k := key(u)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Name: k})
		}
		groups[i].Users = append(groups[i].Users, u)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Name, groups[j].Name
		if a == models.NotSpecified || b == models.NotSpecified {
			return b == models.NotSpecified && a != models.NotSpecified
		}
		return a < b
	})

	return groups
}

// SearchDevelopers returns the developers whose first name or email contains
// query, ignoring case. An empty query returns all developers.
func SearchDevelopers(devs []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return devs
	}

	var out []models.User
	for _, d := range devs {
		if strings.Contains(strings.ToLower(d.FirstName), q) || strings.Contains(strings.ToLower(d.Email), q) {
			out = append(out, d)
		}
	}
	return out
}
