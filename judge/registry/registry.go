/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package registry loads the judge catalog and answers which judges are
// currently usable. The catalog is read once at process start and never
// mutated afterwards; callers receive copies, never shared slices.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kqlsight/kqlsight/judge"
)

// judgeConfig is the YAML shape of one catalog entry. Credentials never
// appear in the file itself; entries name the environment variable that
// holds them.
type judgeConfig struct {
	ID            string             `yaml:"id"`
	DisplayName   string             `yaml:"displayName"`
	Model         string             `yaml:"model"`
	Endpoint      string             `yaml:"endpoint"`
	EndpointEnv   string             `yaml:"endpointEnv"`
	CredentialEnv string             `yaml:"credentialEnv"`
	Capabilities  judge.Capabilities `yaml:"capabilities"`
}

type catalogFile struct {
	Judges []judgeConfig `yaml:"judges"`
}

// Registry is the immutable judge catalog. The zero value is empty but
// usable; construct real registries with New or Load.
type Registry struct {
	order []judge.Identity
	byID  map[string]judge.Identity
}

// New builds a registry from already-resolved identities. Identities must
// validate and IDs must be unique; usability is NOT required here, since a
// judge with missing credentials is a legitimate (skipped) catalog entry.
func New(identities ...judge.Identity) (*Registry, error) {
	r := &Registry{
		order: make([]judge.Identity, 0, len(identities)),
		byID:  make(map[string]judge.Identity, len(identities)),
	}
	for _, id := range identities {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[id.ID]; exists {
			return nil, fmt.Errorf("duplicate judge id %q", id.ID)
		}
		r.order = append(r.order, id)
		r.byID[id.ID] = id
	}
	return r, nil
}

// Load reads a YAML catalog file and resolves each entry's endpoint and
// credential from the environment where the entry names env vars. Entries
// whose credentials are absent stay in the registry but report unusable.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading judge catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from raw YAML catalog bytes.
func Parse(data []byte) (*Registry, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing judge catalog: %w", err)
	}
	if len(cf.Judges) == 0 {
		return nil, fmt.Errorf("judge catalog declares no judges")
	}

	identities := make([]judge.Identity, 0, len(cf.Judges))
	for _, jc := range cf.Judges {
		endpoint := jc.Endpoint
		if endpoint == "" && jc.EndpointEnv != "" {
			endpoint = os.Getenv(jc.EndpointEnv)
		}
		var credential string
		if jc.CredentialEnv != "" {
			credential = os.Getenv(jc.CredentialEnv)
		}
		identities = append(identities, judge.Identity{
			ID:           jc.ID,
			DisplayName:  jc.DisplayName,
			Model:        jc.Model,
			Endpoint:     endpoint,
			Credential:   credential,
			Capabilities: jc.Capabilities,
		})
	}
	return New(identities...)
}

// ListAvailable returns the usable judges in catalog order. The returned
// slice is a copy.
func (r *Registry) ListAvailable() []judge.Identity {
	out := make([]judge.Identity, 0, len(r.order))
	for _, id := range r.order {
		if id.Usable() {
			out = append(out, id)
		}
	}
	return out
}

// Lookup returns the identity for the given id. The second return is false
// when no such judge exists; callers skip rather than fail.
func (r *Registry) Lookup(id string) (judge.Identity, bool) {
	identity, ok := r.byID[id]
	return identity, ok
}

// Len returns the number of catalog entries, usable or not.
func (r *Registry) Len() int {
	return len(r.order)
}
