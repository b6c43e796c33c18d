package domain

import (
	"encoding/json"
	"fmt"
)

// SkillSet groups resume skills by category.
type SkillSet struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	DevOps   []string `json:"devops"`
	Cloud    []string `json:"cloud"`
	AIML     []string `json:"ai_ml"`
	Tools    []string `json:"tools"`
}

// ExperienceEntry is one role on the resume.
type ExperienceEntry struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

// ProjectEntry is one highlighted project, typically sourced from the
// candidate's public repositories.
type ProjectEntry struct {
	Name        string   `json:"name"`
	Commits     int      `json:"commits"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

// Resume is the structured document the workflow produces. It is the schema
// the composer is asked to emit and the shape returned to API callers.
type Resume struct {
	PersonalInfo map[string]string `json:"personal_info"`
	Summary      string            `json:"summary"`
	Skills       SkillSet          `json:"skills"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []string          `json:"education"`
	Projects     []ProjectEntry    `json:"projects"`
	Keywords     []string          `json:"keywords"`
}

// ParseResume decodes a JSON document into a Resume, wrapping decode
// failures as ErrInvalidFormat.
func ParseResume(data string) (*Resume, error) {
	var resume Resume
	if err := json.Unmarshal([]byte(data), &resume); err != nil {
		return nil, fmt.Errorf("%w: resume document is not valid JSON: %v", ErrInvalidFormat, err)
	}
	return &resume, nil
}
