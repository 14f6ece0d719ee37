// Package store loads the analysis configuration data: the industry keyword
// taxonomy and the policy matrix. Both ship with built-in defaults; YAML files
// override them when present. A missing override file is not an error.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/bank-analyzer/internal/industry"
	"fjacquet/bank-analyzer/internal/logging"
	"fjacquet/bank-analyzer/internal/models"
	"fjacquet/bank-analyzer/internal/policy"
)

// AnalysisStore resolves and loads taxonomy and policy-matrix files.
type AnalysisStore struct {
	TaxonomyFile string
	PolicyFile   string

	logger logging.Logger
}

// NewAnalysisStore creates a store for analysis configuration data.
// Empty file names mean "use the built-in defaults".
func NewAnalysisStore(taxonomyFile, policyFile string, logger logging.Logger) *AnalysisStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AnalysisStore{
		TaxonomyFile: taxonomyFile,
		PolicyFile:   policyFile,
		logger:       logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *AnalysisStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "bank-analyzer", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadTaxonomy loads the industry keyword taxonomy, falling back to the
// built-in default when no file is configured or the configured file does not
// exist. The file format is a plain mapping of industry name to keyword list.
func (s *AnalysisStore) LoadTaxonomy() (industry.Taxonomy, error) {
	if s.TaxonomyFile == "" {
		return industry.DefaultTaxonomy(), nil
	}

	filePath, err := s.FindConfigFile(s.TaxonomyFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Taxonomy file not found, using built-in taxonomy",
				logging.Field{Key: logging.FieldFile, Value: s.TaxonomyFile})
			return industry.DefaultTaxonomy(), nil
		}
		return nil, fmt.Errorf("error resolving taxonomy file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var taxonomy industry.Taxonomy
	if err := yaml.Unmarshal(data, &taxonomy); err != nil {
		return nil, fmt.Errorf("error parsing taxonomy file: %w", err)
	}
	if len(taxonomy) == 0 {
		return nil, fmt.Errorf("taxonomy file defines no industries: %s", filePath)
	}

	s.logger.Debug("Loaded industry taxonomy",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(taxonomy)})
	return taxonomy, nil
}

// LoadPolicyMatrix loads the policy matrix, falling back to the built-in
// matrix when no file is configured or the configured file does not exist.
// The file format is a mapping of rule ID to {action_level, action}.
func (s *AnalysisStore) LoadPolicyMatrix() (policy.Matrix, error) {
	if s.PolicyFile == "" {
		return policy.DefaultMatrix(), nil
	}

	filePath, err := s.FindConfigFile(s.PolicyFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Policy matrix file not found, using built-in matrix",
				logging.Field{Key: logging.FieldFile, Value: s.PolicyFile})
			return policy.DefaultMatrix(), nil
		}
		return nil, fmt.Errorf("error resolving policy matrix file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading policy matrix file: %w", err)
	}

	var raw map[string]policy.Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing policy matrix file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("policy matrix file defines no entries: %s", filePath)
	}

	matrix := make(policy.Matrix, len(raw))
	for rid, entry := range raw {
		matrix[models.RuleID(rid)] = entry
	}

	s.logger.Debug("Loaded policy matrix",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(matrix)})
	return matrix, nil
}
