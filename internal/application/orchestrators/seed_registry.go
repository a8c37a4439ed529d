package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"agegate/internal/domain/customfield"
	"agegate/internal/domain/membership"
	"agegate/internal/platform/log"
)

// registrySeed is the YAML shape of a registry seed file.
type registrySeed struct {
	Memberships []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"memberships"`
	CustomFields *[]struct {
		Key          string `yaml:"key"`
		Name         string `yaml:"name"`
		Type         string `yaml:"type"`
		ShowOnSignup bool   `yaml:"show_on_signup"`
	} `yaml:"custom_fields"`
}

// SeedRegistryResult counts what a seed wrote.
type SeedRegistryResult struct {
	Memberships  int
	CustomFields int
	FieldsSynced bool // false when the file had no custom_fields key
}

// ExecuteSeedRegistry loads memberships and custom fields from YAML.
// Memberships are upserted by id. A custom_fields list, when present,
// replaces the whole registry in file order.
// PRE: r yields a YAML document with optional memberships and custom_fields keys
// POST: running the same file twice leaves the same state as running it once
func ExecuteSeedRegistry(ctx context.Context, r io.Reader, deps RegistryDeps) (SeedRegistryResult, error) {
	var seed registrySeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return SeedRegistryResult{}, fmt.Errorf("decode registry seed: %w", err)
	}

	var result SeedRegistryResult
	for _, entry := range seed.Memberships {
		if _, err := ExecuteSaveMembership(ctx, membership.Membership{ID: entry.ID, Name: entry.Name}, deps); err != nil {
			return result, fmt.Errorf("seed membership %q: %w", entry.ID, err)
		}
		result.Memberships++
	}

	if seed.CustomFields != nil {
		fields := make([]customfield.Field, 0, len(*seed.CustomFields))
		for _, entry := range *seed.CustomFields {
			fields = append(fields, customfield.Field{
				Key:          entry.Key,
				Name:         entry.Name,
				Type:         entry.Type,
				ShowOnSignup: entry.ShowOnSignup,
			})
		}
		saved, err := ExecuteReplaceCustomFields(ctx, fields, deps)
		if err != nil {
			return result, fmt.Errorf("seed custom fields: %w", err)
		}
		result.CustomFields = len(saved)
		result.FieldsSynced = true
	}

	logger := log.WithComponent("registry")
	logger.Info().
		Str("event", "registry_seeded").
		Int("memberships", result.Memberships).
		Int("custom_fields", result.CustomFields).
		Msg("registry_event")
	return result, nil
}
