// Package usercfg reads the scouting parameters from the trading bot's user.cfg.
package usercfg

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"coinScout/internal/domain"
	"coinScout/internal/ports"

	"gopkg.in/ini.v1"
)

const (
	sectionName      = "binance_user_config"
	keyBridge        = "bridge"
	keyScoutMultiply = "scout_multiplier"
)

// Load reads bridge and scout_multiplier from the INI file at path.
// Any failure wraps ports.ErrConfigUnavailable.
func Load(path string) (domain.ScoutParams, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ScoutParams{}, fmt.Errorf("user config not found at '%s': %w: %w", path, ports.ErrConfigUnavailable, err)
		}
		return domain.ScoutParams{}, fmt.Errorf("failed to stat user config '%s': %w: %w", path, ports.ErrConfigUnavailable, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return domain.ScoutParams{}, fmt.Errorf("failed to parse user config '%s': %w: %w", path, ports.ErrConfigUnavailable, err)
	}
	return fromFile(file)
}

// Parse reads the parameters from raw INI content.
func Parse(data []byte) (domain.ScoutParams, error) {
	file, err := ini.Load(data)
	if err != nil {
		return domain.ScoutParams{}, fmt.Errorf("failed to parse user config: %w: %w", ports.ErrConfigUnavailable, err)
	}
	return fromFile(file)
}

func fromFile(file *ini.File) (domain.ScoutParams, error) {
	section, err := file.GetSection(sectionName)
	if err != nil {
		return domain.ScoutParams{}, fmt.Errorf("section [%s] missing: %w", sectionName, ports.ErrConfigUnavailable)
	}

	var missing []string
	for _, k := range []string{keyBridge, keyScoutMultiply} {
		if !section.HasKey(k) || strings.TrimSpace(section.Key(k).String()) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return domain.ScoutParams{}, fmt.Errorf("keys %s missing in [%s]: %w", strings.Join(missing, ", "), sectionName, ports.ErrConfigUnavailable)
	}

	multiplier, err := section.Key(keyScoutMultiply).Float64()
	if err != nil {
		return domain.ScoutParams{}, fmt.Errorf("invalid %s: %w: %w", keyScoutMultiply, ports.ErrConfigUnavailable, err)
	}

	params := domain.ScoutParams{
		Bridge:          strings.ToUpper(strings.TrimSpace(section.Key(keyBridge).String())),
		ScoutMultiplier: multiplier,
	}
	if err := params.Validate(); err != nil {
		return domain.ScoutParams{}, fmt.Errorf("invalid user config: %w: %w", ports.ErrConfigUnavailable, err)
	}
	return params, nil
}
