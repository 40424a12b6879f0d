package rechnung

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Properties is the program configuration, stored as system/properties.yml.
// The file is created with defaults on first start and read back on every
// start, exactly like the original installation layout.
type Properties struct {
	ProgramYear             int    `yaml:"program_year"`
	DebugMode               bool   `yaml:"debug_mode"`
	RechnungenLocation      string `yaml:"rechnungen_location"`
	StammdatenLocation      string `yaml:"stammdaten_location"`
	BackupLocation          string `yaml:"backup_location"`
	BackupsEnabled          bool   `yaml:"backups_enabled"`
	LogsEnabled             bool   `yaml:"logs_enabled"`
	LogLocation             string `yaml:"log_location"`
	BehandlungsartenLimiter bool   `yaml:"behandlungsarten_limiter"`
	BehandlungsartenLimit   int    `yaml:"behandlungsarten_limit"`
}

// DefaultProperties returns the configuration a fresh installation under
// baseDir starts with.
func DefaultProperties(baseDir string) Properties {
	return Properties{
		ProgramYear:             time.Now().Year(),
		DebugMode:               false,
		RechnungenLocation:      filepath.Join(baseDir, "rechnungen"),
		StammdatenLocation:      filepath.Join(baseDir, "stammdaten"),
		BackupLocation:          filepath.Join(baseDir, "backups"),
		BackupsEnabled:          true,
		LogsEnabled:             true,
		LogLocation:             filepath.Join(baseDir, "system", "logs"),
		BehandlungsartenLimiter: true,
		BehandlungsartenLimit:   5,
	}
}

// LoadProperties reads the configuration file, creating it with defaults
// when it does not exist yet.
func LoadProperties(path string, defaults Properties) (Properties, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := SaveProperties(path, defaults); err != nil {
			return Properties{}, err
		}
		return defaults, nil
	}
	if err != nil {
		return Properties{}, fmt.Errorf("cannot read properties %q: %w", path, err)
	}
	p := defaults
	if err := yaml.Unmarshal(content, &p); err != nil {
		return Properties{}, fmt.Errorf("cannot parse properties %q: %w", path, err)
	}
	return p, nil
}

// SaveProperties writes the configuration file, creating its directory
// when absent.
func SaveProperties(path string, p Properties) error {
	return saveYAML(path, p)
}

// UserData holds the practice owner's tax and bank details printed on the
// invoices, plus the price range suggested by the HP form. Stored as
// system/user_data.yml.
type UserData struct {
	SteuerID  string `yaml:"steuer_id"`
	IBAN      string `yaml:"iban"`
	BIC       string `yaml:"bic"`
	PriceFrom string `yaml:"price_from"`
	PriceTo   string `yaml:"price_to"`
}

// defaultUserData are the values of a fresh user_data.yml.
func defaultUserData() UserData {
	return UserData{PriceFrom: "100", PriceTo: "110"}
}

// LoadUserData reads the user data file, creating it on first start. Keys
// added after an installation was first created (the price range) are
// healed to their defaults and written back, so older files keep working.
func LoadUserData(path string) (UserData, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		u := defaultUserData()
		if err := SaveUserData(path, u); err != nil {
			return UserData{}, err
		}
		return u, nil
	}
	if err != nil {
		return UserData{}, fmt.Errorf("cannot read user data %q: %w", path, err)
	}
	var u UserData
	if err := yaml.Unmarshal(content, &u); err != nil {
		return UserData{}, fmt.Errorf("cannot parse user data %q: %w", path, err)
	}
	healed := false
	if u.PriceFrom == "" {
		u.PriceFrom = defaultUserData().PriceFrom
		healed = true
	}
	if u.PriceTo == "" {
		u.PriceTo = defaultUserData().PriceTo
		healed = true
	}
	if healed {
		if err := SaveUserData(path, u); err != nil {
			return UserData{}, err
		}
	}
	return u, nil
}

// SaveUserData writes the user data file.
func SaveUserData(path string, u UserData) error {
	return saveYAML(path, u)
}

// HasBankDetails reports whether all the fields printed in the invoice
// footer are filled in.
func (u UserData) HasBankDetails() bool {
	return u.SteuerID != "" && u.IBAN != "" && u.BIC != ""
}

func saveYAML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %q: %w", path, err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
