// Package rules holds the fraud rule set: thresholds and impact weights
// driving risk scoring and routing. Loaded once at startup and immutable
// for the process lifetime.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default values used when a key is absent from the rules file.
const (
	DefaultAmountHighThreshold    = 5000
	DefaultAmountHighImpact       = 0.3
	DefaultSuspiciousDomainImpact = 0.3
	DefaultJitterMax              = 0.05
	DefaultBlockThreshold         = 0.5
	DefaultPreferThreshold        = 0.25
)

// DefaultSuspiciousDomains are the suffixes flagged when no rules file
// overrides them.
var DefaultSuspiciousDomains = []string{".ru", "test.com"}

// Set is the immutable rule set for risk scoring.
type Set struct {
	// AmountHighThreshold flags amounts at or above this value (minor units).
	AmountHighThreshold int64
	// AmountHighImpact is added to the score when the amount rule fires.
	AmountHighImpact float64
	// SuspiciousDomains are email-domain suffixes; first match wins.
	SuspiciousDomains []string
	// SuspiciousDomainImpact is added to the score on a domain match.
	SuspiciousDomainImpact float64
	// JitterMax bounds the random perturbation added to every score.
	JitterMax float64
	// BlockThreshold: scores at or above this are blocked outright.
	BlockThreshold float64
	// PreferThreshold: scores below this prefer the primary provider.
	PreferThreshold float64
}

// fileSet mirrors the on-disk JSON shape. Pointer fields distinguish
// "absent" from zero so defaults can fill the gaps.
type fileSet struct {
	AmountHighThreshold    *int64    `json:"amountHighThreshold"`
	AmountHighImpact       *float64  `json:"amountHighImpact"`
	SuspiciousDomains      *[]string `json:"suspiciousDomains"`
	SuspiciousDomainImpact *float64  `json:"suspiciousDomainImpact"`
	Jitter                 *float64  `json:"jitter"`
	BlockThreshold         *float64  `json:"blockThreshold"`
	PreferThreshold        *float64  `json:"preferThreshold"`
}

// Defaults returns a rule set with all built-in values.
func Defaults() *Set {
	return &Set{
		AmountHighThreshold:    DefaultAmountHighThreshold,
		AmountHighImpact:       DefaultAmountHighImpact,
		SuspiciousDomains:      append([]string(nil), DefaultSuspiciousDomains...),
		SuspiciousDomainImpact: DefaultSuspiciousDomainImpact,
		JitterMax:              DefaultJitterMax,
		BlockThreshold:         DefaultBlockThreshold,
		PreferThreshold:        DefaultPreferThreshold,
	}
}

// Load reads the rule set from a JSON file, filling absent keys with
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Set, error) {
	set := Defaults()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var fs fileSet
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if fs.AmountHighThreshold != nil {
		set.AmountHighThreshold = *fs.AmountHighThreshold
	}
	if fs.AmountHighImpact != nil {
		set.AmountHighImpact = *fs.AmountHighImpact
	}
	if fs.SuspiciousDomains != nil {
		set.SuspiciousDomains = append([]string(nil), *fs.SuspiciousDomains...)
	}
	if fs.SuspiciousDomainImpact != nil {
		set.SuspiciousDomainImpact = *fs.SuspiciousDomainImpact
	}
	if fs.Jitter != nil {
		set.JitterMax = *fs.Jitter
	}
	if fs.BlockThreshold != nil {
		set.BlockThreshold = *fs.BlockThreshold
	}
	if fs.PreferThreshold != nil {
		set.PreferThreshold = *fs.PreferThreshold
	}

	if err := set.validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Set) validate() error {
	if s.AmountHighImpact < 0 || s.AmountHighImpact > 1 {
		return fmt.Errorf("amountHighImpact must be in [0,1], got %v", s.AmountHighImpact)
	}
	if s.SuspiciousDomainImpact < 0 || s.SuspiciousDomainImpact > 1 {
		return fmt.Errorf("suspiciousDomainImpact must be in [0,1], got %v", s.SuspiciousDomainImpact)
	}
	if s.JitterMax < 0 || s.JitterMax >= 1 {
		return fmt.Errorf("jitter must be in [0,1), got %v", s.JitterMax)
	}
	if s.BlockThreshold <= 0 || s.BlockThreshold > 1 {
		return fmt.Errorf("blockThreshold must be in (0,1], got %v", s.BlockThreshold)
	}
	if s.PreferThreshold < 0 || s.PreferThreshold > s.BlockThreshold {
		return fmt.Errorf("preferThreshold must be in [0, blockThreshold], got %v", s.PreferThreshold)
	}
	return nil
}
