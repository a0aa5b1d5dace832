package inventory

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Controller families with a known resource-path table.
const (
	FamilyILO   = "ilo"
	FamilyIDRAC = "idrac"
)

type Inventory struct {
	Targets []Target `yaml:"targets"`
}

// Target is one management controller to poll. The engine never mutates or
// persists these; the admin surface owns the file.
type Target struct {
	Address  string `yaml:"address"`
	Site     string `yaml:"site"`
	Family   string `yaml:"family"`
	Username string `yaml:"username"`
	// inline password, or name of an env var holding it (env wins)
	Password    string `yaml:"password"`
	PasswordEnv string `yaml:"password_env"`
}

// Secret resolves the credential for this target.
func (t Target) Secret() string {
	if t.PasswordEnv != "" {
		if v := os.Getenv(t.PasswordEnv); v != "" {
			return v
		}
	}
	return t.Password
}

func Load(path string) (*Inventory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(b, &inv); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	// normalize defaults, first-seen wins on duplicate addresses
	seen := make(map[string]bool, len(inv.Targets))
	targets := make([]Target, 0, len(inv.Targets))
	for i := range inv.Targets {
		t := inv.Targets[i]
		if t.Address == "" || seen[t.Address] {
			continue
		}
		seen[t.Address] = true
		if t.Site == "" {
			t.Site = "default"
		}
		t.Family = strings.ToLower(t.Family)
		if t.Family == "" {
			t.Family = FamilyILO
		}
		targets = append(targets, t)
	}
	inv.Targets = targets

	return &inv, nil
}

// Source supplies the current target list once per collection cycle.
type Source interface {
	Targets() ([]Target, error)
}

// FileSource re-reads the inventory file on every call, so targets added or
// removed by the admin surface show up on the next cycle without a restart.
type FileSource struct {
	Path string
}

func (s *FileSource) Targets() ([]Target, error) {
	inv, err := Load(s.Path)
	if err != nil {
		return nil, err
	}
	return inv.Targets, nil
}
