package seeder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/aurafin/aura-backend/internal/domain"
)

type catalogEntry struct {
	ID    string `yaml:"id"`
	Brand string `yaml:"brand"`
	Deal  string `yaml:"deal"`
	Logo  string `yaml:"logo"`
	Color string `yaml:"color"`
	Cost  int    `yaml:"cost"`
}

type catalogFile struct {
	Rewards []catalogEntry `yaml:"rewards"`
}

// LoadRewardCatalog reads a reward catalog from a YAML file and returns it as
// the seed reward set. Entries are validated against the reward schema; a bad
// entry fails the whole load rather than being silently dropped.
func LoadRewardCatalog(catalogPath string) ([]domain.Reward, error) {
	path := catalogPath
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", catalogPath, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", catalogPath, err)
	}

	rewards := make([]domain.Reward, 0, len(file.Rewards))
	for i, entry := range file.Rewards {
		reward := domain.Reward{
			ID:      entry.ID,
			Brand:   entry.Brand,
			Deal:    entry.Deal,
			Logo:    entry.Logo,
			Color:   entry.Color,
			Cost:    entry.Cost,
			Claimed: false,
		}
		if reward.ID == "" {
			reward.ID = fmt.Sprintf("catalog-%d", i+1)
		}
		if err := reward.Validate(); err != nil {
			return nil, fmt.Errorf("reward at index %d is invalid: %w", i, err)
		}
		rewards = append(rewards, reward)
	}

	if len(rewards) == 0 {
		return nil, fmt.Errorf("catalog %s contains no rewards", catalogPath)
	}
	return rewards, nil
}
