package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const profileTypeKey = "type"

// Registry serves workload profiles from an ini file:
//
//	[big-run]
//	type       = training
//	gpu        = h100
//	platform   = lambda
//	model_size = 13B
//	peft       = true
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := toProfile(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.ConfigProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.ConfigProfile{}, fmt.Errorf("profile %s not found", name)
	}
	return toProfile(section)
}

func toProfile(section *ini.Section) (domain.ConfigProfile, error) {
	profile := domain.ConfigProfile{
		Name:   section.Name(),
		Type:   domain.ProfileTypeAny,
		Values: make(map[string]string),
	}

	for _, key := range section.Keys() {
		name := strings.ToLower(strings.TrimSpace(key.Name()))
		if name == profileTypeKey {
			t, err := parseProfileType(key.String())
			if err != nil {
				return domain.ConfigProfile{}, fmt.Errorf("profile %s: %w", section.Name(), err)
			}
			profile.Type = t
			continue
		}
		// ini keys use snake_case, flags use kebab-case
		profile.Values[strings.ReplaceAll(name, "_", "-")] = strings.TrimSpace(key.String())
	}
	return profile, nil
}

func parseProfileType(s string) (domain.ProfileType, error) {
	switch t := domain.ProfileType(strings.ToLower(strings.TrimSpace(s))); t {
	case domain.ProfileTypeTraining, domain.ProfileTypeInference, domain.ProfileTypeAny:
		return t, nil
	default:
		return "", fmt.Errorf("unknown profile type %q", s)
	}
}

// Keys returns the profile's flag names in sorted order.
func Keys(profile domain.ConfigProfile) []string {
	keys := make([]string, 0, len(profile.Values))
	for k := range profile.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
