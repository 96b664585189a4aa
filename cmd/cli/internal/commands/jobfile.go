package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wolfeidau/devmarket/internal/models"
)

// loadJobFile reads a job posting from a YAML or JSON file. JSON is detected by
// the .json extension, anything else is parsed as YAML.
func loadJobFile(path string) (models.Job, error) {
	var job models.Job

	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("failed to read job file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &job); err != nil {
			return job, fmt.Errorf("failed to parse JSON job file: %w", err)
		}
		return job, nil
	}

	if err := yaml.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("failed to parse YAML job file: %w", err)
	}
	return job, nil
}
