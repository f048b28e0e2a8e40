package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Nader-Awad/COMP4050BAMBrazil/booking"
)

type ResourcesFile struct {
	Resources []booking.Resource `json:"resources"`
}

// ResourceRegistry is a file-backed booking.ResourceRegistry. The
// registry is administered outside the engine (resources are added or
// taken down for maintenance by staff); the engine only reads it.
type ResourceRegistry struct {
	resources []booking.Resource
}

func LoadResources() (*ResourceRegistry, error) {
	path, err := ResourcesPath()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ResourceRegistry{}, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resources path is a directory: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var payload ResourcesFile
	if err := json.NewDecoder(file).Decode(&payload); err != nil {
		return nil, err
	}
	for i := range payload.Resources {
		if payload.Resources[i].Status == "" {
			payload.Resources[i].Status = booking.ResourceAvailable
		}
	}
	return &ResourceRegistry{resources: payload.Resources}, nil
}

func NewResourceRegistry(resources []booking.Resource) *ResourceRegistry {
	return &ResourceRegistry{resources: resources}
}

func (r *ResourceRegistry) Lookup(id string) (booking.Resource, bool) {
	needle := strings.ToLower(strings.TrimSpace(id))
	for _, resource := range r.resources {
		if strings.ToLower(resource.ID) == needle {
			return resource, true
		}
	}
	return booking.Resource{}, false
}

func (r *ResourceRegistry) All() []booking.Resource {
	out := make([]booking.Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

func (r *ResourceRegistry) Upsert(resource booking.Resource) {
	for i := range r.resources {
		if r.resources[i].ID == resource.ID {
			r.resources[i] = resource
			return
		}
	}
	r.resources = append(r.resources, resource)
}

func SaveResources(registry *ResourceRegistry) error {
	if _, err := ensureConfigDir(); err != nil {
		return err
	}

	path, err := ResourcesPath()
	if err != nil {
		return err
	}

	sorted := make([]booking.Resource, len(registry.resources))
	copy(sorted, registry.resources)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].ID) < strings.ToLower(sorted[j].ID)
	})

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ResourcesFile{Resources: sorted})
}
