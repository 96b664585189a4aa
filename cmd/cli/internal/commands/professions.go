package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/devmarket/internal/models"
)

const professionManagementPath = "/admin/profession-management"

// ProfessionsCmd covers profession management. Listing is public, every
// change needs an admin session.
type ProfessionsCmd struct {
	List      ProfessionsListCmd   `cmd:"" help:"List professions"`
	Show      ProfessionsShowCmd   `cmd:"" help:"Show a profession and its content"`
	Create    ProfessionsCreateCmd `cmd:"" help:"Create a profession"`
	Update    ProfessionsUpdateCmd `cmd:"" help:"Update a profession"`
	Delete    ProfessionsDeleteCmd `cmd:"" help:"Delete a profession"`
	Exam      ExamCmd              `cmd:"" help:"Manage exam links"`
	Hackathon HackathonCmd         `cmd:"" help:"Manage hackathons"`
	Quiz      QuizCmd              `cmd:"" help:"Manage code quizzes"`
}

type ProfessionsListCmd struct{}

func (c *ProfessionsListCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		professions, err := app.API.Professions.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list professions: %w", err)
		}

		if len(professions) == 0 {
			app.println("No professions found.")
			return nil
		}

		w := table(app)
		fmt.Fprintln(w, "ID\tNAME\tEXAMS\tHACKATHONS\tQUIZZES")
		for _, p := range professions {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", p.ID, p.Name, len(p.ExamLinks), len(p.Hackathons), len(p.CodeQuizzes))
		}
		return w.Flush()
	})
}

type ProfessionsShowCmd struct {
	ID int64 `arg:"" help:"Profession ID"`
}

func (c *ProfessionsShowCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate(professionManagementPath); err != nil {
			return err
		}

		p, err := app.API.Professions.Get(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to get profession: %w", err)
		}

		printProfession(app, *p)
		return nil
	})
}

type ProfessionsCreateCmd struct {
	Name        string `arg:"" help:"Profession name"`
	Description string `help:"Description"`
}

func (c *ProfessionsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate(professionManagementPath); err != nil {
			return err
		}

		p, err := app.API.Professions.Create(ctx, models.Profession{Name: c.Name, Description: c.Description})
		if err != nil {
			return fmt.Errorf("failed to create profession: %w", err)
		}

		app.printf("Profession %d created: %s\n", p.ID, p.Name)
		return nil
	})
}

type ProfessionsUpdateCmd struct {
	ID          int64  `arg:"" help:"Profession ID"`
	Name        string `help:"Profession name" required:""`
	Description string `help:"Description"`
}

func (c *ProfessionsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate(professionManagementPath); err != nil {
			return err
		}

		p, err := app.API.Professions.Update(ctx, c.ID, models.Profession{Name: c.Name, Description: c.Description})
		if err != nil {
			return fmt.Errorf("failed to update profession: %w", err)
		}

		app.printf("Profession %d updated: %s\n", p.ID, p.Name)
		return nil
	})
}

type ProfessionsDeleteCmd struct {
	ID int64 `arg:"" help:"Profession ID"`
}

func (c *ProfessionsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate(professionManagementPath); err != nil {
			return err
		}

		if err := app.API.Professions.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("failed to delete profession: %w", err)
		}

		app.printf("Profession %d deleted\n", c.ID)
		return nil
	})
}

// ExamCmd manages the exam links of a profession.
type ExamCmd struct {
	Add    ExamAddCmd    `cmd:"" help:"Add an exam link"`
	Update ExamUpdateCmd `cmd:"" help:"Update an exam link"`
	Delete ExamDeleteCmd `cmd:"" help:"Delete an exam link"`
}

type ExamFlags struct {
	Title       string `help:"Exam title" required:""`
	URL         string `help:"Exam URL" name:"url" required:""`
	Description string `help:"Description"`
	Difficulty  string `help:"Difficulty level: beginner, intermediate or advanced"`
}

func (f ExamFlags) link() models.ExamLink {
	return models.ExamLink{Title: f.Title, URL: f.URL, Description: f.Description, DifficultyLevel: f.Difficulty}
}

type ExamAddCmd struct {
	Profession int64     `arg:"" help:"Profession ID"`
	Exam       ExamFlags `embed:""`
}

func (c *ExamAddCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Exam link added", func(ctx context.Context, app *App) error {
		return app.API.Professions.AddExamLink(ctx, c.Profession, c.Exam.link())
	})
}

type ExamUpdateCmd struct {
	Profession int64     `arg:"" help:"Profession ID"`
	ID         int64     `arg:"" help:"Exam link ID"`
	Exam       ExamFlags `embed:""`
}

func (c *ExamUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Exam link updated", func(ctx context.Context, app *App) error {
		return app.API.Professions.UpdateExamLink(ctx, c.Profession, c.ID, c.Exam.link())
	})
}

type ExamDeleteCmd struct {
	Profession int64 `arg:"" help:"Profession ID"`
	ID         int64 `arg:"" help:"Exam link ID"`
}

func (c *ExamDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Exam link deleted", func(ctx context.Context, app *App) error {
		return app.API.Professions.DeleteExamLink(ctx, c.Profession, c.ID)
	})
}

// HackathonCmd manages the hackathons of a profession.
type HackathonCmd struct {
	Add    HackathonAddCmd    `cmd:"" help:"Add a hackathon"`
	Update HackathonUpdateCmd `cmd:"" help:"Update a hackathon"`
	Delete HackathonDeleteCmd `cmd:"" help:"Delete a hackathon"`
}

type HackathonFlags struct {
	Title            string `help:"Hackathon title" required:""`
	Start            string `help:"Start date, YYYY-MM-DD or RFC 3339" required:""`
	End              string `help:"End date, YYYY-MM-DD or RFC 3339"`
	Description      string `help:"Description"`
	RegistrationLink string `help:"Registration link" name:"registration-link"`
	Location         string `help:"Location, online when empty"`
	PrizePool        string `help:"Prize pool" name:"prize-pool"`
}

func (f HackathonFlags) hackathon() models.Hackathon {
	h := models.Hackathon{
		Title:            f.Title,
		StartDate:        f.Start,
		Description:      f.Description,
		RegistrationLink: f.RegistrationLink,
		Location:         f.Location,
		PrizePool:        f.PrizePool,
	}
	if f.End != "" {
		end := f.End
		h.EndDate = &end
	}
	return h
}

type HackathonAddCmd struct {
	Profession int64          `arg:"" help:"Profession ID"`
	Hackathon  HackathonFlags `embed:""`
}

func (c *HackathonAddCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Hackathon added", func(ctx context.Context, app *App) error {
		return app.API.Professions.AddHackathon(ctx, c.Profession, c.Hackathon.hackathon())
	})
}

type HackathonUpdateCmd struct {
	Profession int64          `arg:"" help:"Profession ID"`
	ID         int64          `arg:"" help:"Hackathon ID"`
	Hackathon  HackathonFlags `embed:""`
}

func (c *HackathonUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Hackathon updated", func(ctx context.Context, app *App) error {
		return app.API.Professions.UpdateHackathon(ctx, c.Profession, c.ID, c.Hackathon.hackathon())
	})
}

type HackathonDeleteCmd struct {
	Profession int64 `arg:"" help:"Profession ID"`
	ID         int64 `arg:"" help:"Hackathon ID"`
}

func (c *HackathonDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Hackathon deleted", func(ctx context.Context, app *App) error {
		return app.API.Professions.DeleteHackathon(ctx, c.Profession, c.ID)
	})
}

// QuizCmd manages the code quizzes of a profession.
type QuizCmd struct {
	Add    QuizAddCmd    `cmd:"" help:"Add a code quiz"`
	Update QuizUpdateCmd `cmd:"" help:"Update a code quiz"`
	Delete QuizDeleteCmd `cmd:"" help:"Delete a code quiz"`
}

type QuizFlags struct {
	Title         string `help:"Quiz title" required:""`
	URL           string `help:"Quiz URL" name:"url"`
	Description   string `help:"Description"`
	Difficulty    string `help:"Difficulty level: beginner, intermediate or advanced"`
	EstimatedTime int    `help:"Estimated time in minutes" name:"estimated-time"`
}

func (f QuizFlags) quiz() models.CodeQuiz {
	return models.CodeQuiz{
		Title:           f.Title,
		QuizURL:         f.URL,
		Description:     f.Description,
		DifficultyLevel: f.Difficulty,
		EstimatedTime:   f.EstimatedTime,
	}
}

type QuizAddCmd struct {
	Profession int64     `arg:"" help:"Profession ID"`
	Quiz       QuizFlags `embed:""`
}

func (c *QuizAddCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Code quiz added", func(ctx context.Context, app *App) error {
		return app.API.Professions.AddCodeQuiz(ctx, c.Profession, c.Quiz.quiz())
	})
}

type QuizUpdateCmd struct {
	Profession int64     `arg:"" help:"Profession ID"`
	ID         int64     `arg:"" help:"Code quiz ID"`
	Quiz       QuizFlags `embed:""`
}

func (c *QuizUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Code quiz updated", func(ctx context.Context, app *App) error {
		return app.API.Professions.UpdateCodeQuiz(ctx, c.Profession, c.ID, c.Quiz.quiz())
	})
}

type QuizDeleteCmd struct {
	Profession int64 `arg:"" help:"Profession ID"`
	ID         int64 `arg:"" help:"Code quiz ID"`
}

func (c *QuizDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	return manageContent(ctx, globals, "Code quiz deleted", func(ctx context.Context, app *App) error {
		return app.API.Professions.DeleteCodeQuiz(ctx, c.Profession, c.ID)
	})
}

// manageContent runs a profession content change behind the admin guard.
func manageContent(ctx context.Context, globals *Globals, done string, fn func(ctx context.Context, app *App) error) error {
	return withApp(ctx, globals, func(app *App) error {
		if _, _, err := app.navigate(professionManagementPath); err != nil {
			return err
		}

		if err := fn(ctx, app); err != nil {
			return err
		}

		app.println(done)
		return nil
	})
}

func printProfession(app *App, p models.Profession) {
	app.printf("%s\n", p.Name)
	if p.Description != "" {
		app.printf("%s\n", p.Description)
	}

	if len(p.ExamLinks) > 0 {
		app.println("\nExams:")
		for _, e := range p.ExamLinks {
			app.printf("  #%d %s [%s]\n      %s\n", e.ID, e.Title, e.DifficultyLevel, e.URL)
		}
	}

	if len(p.Hackathons) > 0 {
		app.println("\nHackathons:")
		for _, h := range p.Hackathons {
			when := h.StartDate
			if h.EndDate != nil {
				when += " to " + *h.EndDate
			}
			app.printf("  #%d %s (%s, %s)\n", h.ID, h.Title, when, h.Location)
			if h.PrizePool != "" {
				app.printf("      Prize pool: %s\n", h.PrizePool)
			}
			if h.RegistrationLink != "" {
				app.printf("      %s\n", h.RegistrationLink)
			}
		}
	}

	if len(p.CodeQuizzes) > 0 {
		app.println("\nCode quizzes:")
		for _, q := range p.CodeQuizzes {
			app.printf("  #%d %s [%s, %d min]\n", q.ID, q.Title, q.DifficultyLevel, q.EstimatedTime)
			if q.QuizURL != "" {
				app.printf("      %s\n", q.QuizURL)
			}
		}
	}

	if len(p.ExamLinks) == 0 && len(p.Hackathons) == 0 && len(p.CodeQuizzes) == 0 {
		app.println("\nNo content yet.")
	}
}
