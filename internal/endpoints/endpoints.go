// Package endpoints loads named API endpoints from YAML/JSON files.
package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ProductsID is the endpoint id the CLI resolves by default.
const ProductsID = "products"

// Endpoint is a named resource root, e.g. the products collection URL.
type Endpoint struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type file struct {
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
}

// Registry holds endpoints keyed by id, preserving file order.
type Registry struct {
	mu        sync.RWMutex
	endpoints []Endpoint
	idx       map[string]Endpoint
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{idx: make(map[string]Endpoint)}
}

// LoadRegistry loads endpoints from path. A missing file yields an empty registry.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return NewRegistry(), nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}

	parsed, err := parseFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for i := range parsed.Endpoints {
		ep := sanitizeEndpoint(parsed.Endpoints[i])
		if err := validateEndpoint(ep); err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		if _, exists := reg.idx[ep.ID]; exists {
			return nil, fmt.Errorf("duplicate endpoint id %q", ep.ID)
		}
		reg.endpoints = append(reg.endpoints, ep)
		reg.idx[ep.ID] = ep
	}
	return reg, nil
}

func parseFile(data []byte, ext string) (file, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f file
		if err := d.fn(data, &f); err != nil {
			errs = append(errs, fmt.Errorf("decode %s endpoints: %w", d.name, err))
			continue
		}
		return f, nil
	}
	if len(errs) == 0 {
		return file{}, fmt.Errorf("endpoints file extension %q not recognized (expected YAML or JSON)", ext)
	}
	return file{}, errors.Join(errs...)
}

func sanitizeEndpoint(ep Endpoint) Endpoint {
	ep.ID = strings.ToLower(strings.TrimSpace(ep.ID))
	ep.Name = strings.TrimSpace(ep.Name)
	ep.URL = strings.TrimRight(strings.TrimSpace(ep.URL), "/")
	return ep
}

func validateEndpoint(ep Endpoint) error {
	if ep.ID == "" {
		return errors.New("id is required")
	}
	if ep.URL == "" {
		return fmt.Errorf("url is required for endpoint %q", ep.ID)
	}
	if _, err := url.Parse(ep.URL); err != nil {
		return fmt.Errorf("invalid url for endpoint %q: %w", ep.ID, err)
	}
	return nil
}

// Ensure adds ep unless an endpoint with the same id is already registered.
// It reports whether ep was added.
func (r *Registry) Ensure(ep Endpoint) (bool, error) {
	ep = sanitizeEndpoint(ep)
	if err := validateEndpoint(ep); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.idx[ep.ID]; exists {
		return false, nil
	}
	r.endpoints = append(r.endpoints, ep)
	r.idx[ep.ID] = ep
	return true, nil
}

// Set adds ep, replacing any endpoint registered under the same id.
func (r *Registry) Set(ep Endpoint) error {
	ep = sanitizeEndpoint(ep)
	if err := validateEndpoint(ep); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.idx[ep.ID]; exists {
		for i := range r.endpoints {
			if r.endpoints[i].ID == ep.ID {
				r.endpoints[i] = ep
			}
		}
	} else {
		r.endpoints = append(r.endpoints, ep)
	}
	r.idx[ep.ID] = ep
	return nil
}

// ByID returns the endpoint for id, if registered.
func (r *Registry) ByID(id string) (Endpoint, bool) {
	if r == nil {
		return Endpoint{}, false
	}
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return Endpoint{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.idx[id]
	return ep, ok
}

// All returns a copy of the registered endpoints.
func (r *Registry) All() []Endpoint {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}
