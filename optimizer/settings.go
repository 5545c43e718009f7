// Package optimizer - session settings and the YAML loader.
package optimizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default session knobs (see Settings).
const (
	// DefaultResetToBestIterations - fruitless iterations before the
	// working script snaps back to the current best.
	DefaultResetToBestIterations = 3

	// DefaultGiveUpAfterNoProgress - fruitless iterations before the
	// session reports Stop.
	DefaultGiveUpAfterNoProgress = 999

	// DefaultEndOffset - how many frames past the script's last block the
	// optimization window extends, so the final block's effect is still
	// observable.
	DefaultEndOffset = 36
)

// Settings is the configuration bundle of one optimizer session.
// Zero value is not meaningful; start from DefaultSettings.
type Settings struct {
	// Goal selects what to maximize; Undetermined is resolved from the
	// first run's movement direction.
	Goal Goal `mapstructure:"goal"`

	// ResetToBestIterations - after this many iterations without progress
	// the working script is reset to the current best.
	ResetToBestIterations uint32 `mapstructure:"reset_to_best_iterations"`

	// GiveUpAfterNoProgress - abort the session after this many fruitless
	// iterations.
	GiveUpAfterNoProgress uint32 `mapstructure:"give_up_after_no_progress"`

	// EndOffset - frames the optimization window extends past the last
	// block (ignored when Frames is positive).
	EndOffset int32 `mapstructure:"end_offset"`

	// Frames - if positive, a fixed optimization window length.
	Frames int32 `mapstructure:"frames"`

	// Algorithms - which mutation strategies to instantiate, in order.
	Algorithms []AlgorithmID `mapstructure:"algorithms"`

	// InputNodes - an explicit baseline path to hold runs against
	// (overrides sampling the first run).
	InputNodes []r3.Vector `mapstructure:"-"`

	// SecondaryGoals - enforce kills/secrets/center-prints/HP floors.
	SecondaryGoals bool `mapstructure:"secondary_goals"`

	// UseNodes - enforce positional path matching.
	UseNodes bool `mapstructure:"use_nodes"`
}

// DefaultSettings returns the production defaults: auto goal, the standard
// algorithm mix, node matching on, secondary goals off.
func DefaultSettings() Settings {
	return Settings{
		Goal:                  Undetermined,
		ResetToBestIterations: DefaultResetToBestIterations,
		GiveUpAfterNoProgress: DefaultGiveUpAfterNoProgress,
		EndOffset:             DefaultEndOffset,
		Frames:                -1,
		Algorithms:            StandardAlgorithms(),
		SecondaryGoals:        false,
		UseNodes:              true,
	}
}

// Validate checks the combination: a known goal, a non-empty algorithm
// list of known identifiers, and a frame window that is either positive or
// the -1 "derive from script" sentinel.
func (s *Settings) Validate() error {
	if !s.Goal.Valid() {
		return ErrInvalidGoal
	}
	if len(s.Algorithms) == 0 {
		return ErrNoAlgorithms
	}
	for _, id := range s.Algorithms {
		if !id.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, id)
		}
	}
	if s.Frames <= 0 && s.Frames != -1 {
		return ErrBadFrameWindow
	}

	return nil
}

// goalNames maps the YAML spellings onto goal values.
var goalNames = map[string]Goal{
	"auto":       Undetermined,
	"+x":         PlusX,
	"-x":         NegX,
	"+y":         PlusY,
	"-y":         NegY,
	"+z":         PlusZ,
	"-z":         NegZ,
	"time":       Time,
	"kills":      Kills,
	"teleporter": Teleporter,
}

// algorithmNames maps the YAML spellings onto algorithm identifiers.
var algorithmNames = map[string]AlgorithmID{
	"turn_optimizer":    AlgoTurnOptimizer,
	"rng_strafer":       AlgoRNGStrafer,
	"rng_block_mover":   AlgoRNGBlockMover,
	"rng_shooter":       AlgoRNGShooter,
	"strafe_adjuster":   AlgoStrafeAdjuster,
	"frame_block_mover": AlgoFrameBlockMover,
}

// settingsFile mirrors the YAML shape before name resolution.
type settingsFile struct {
	Goal                  string   `mapstructure:"goal"`
	ResetToBestIterations *uint32  `mapstructure:"reset_to_best_iterations"`
	GiveUpAfterNoProgress *uint32  `mapstructure:"give_up_after_no_progress"`
	EndOffset             *int32   `mapstructure:"end_offset"`
	Frames                *int32   `mapstructure:"frames"`
	Algorithms            []string `mapstructure:"algorithms"`
	SecondaryGoals        *bool    `mapstructure:"secondary_goals"`
	UseNodes              *bool    `mapstructure:"use_nodes"`
}

// SettingsFromYAML loads a settings file, starting from DefaultSettings and
// overriding only the keys present. Unknown goal or algorithm names are
// configuration errors.
func SettingsFromYAML(path string) (Settings, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return Settings{}, err
	}

	var file settingsFile
	if err := vp.Unmarshal(&file); err != nil {
		return Settings{}, err
	}

	out := DefaultSettings()
	if file.Goal != "" {
		goal, ok := goalNames[strings.ToLower(file.Goal)]
		if !ok {
			return Settings{}, fmt.Errorf("%w: %q", ErrInvalidGoal, file.Goal)
		}
		out.Goal = goal
	}
	if file.ResetToBestIterations != nil {
		out.ResetToBestIterations = *file.ResetToBestIterations
	}
	if file.GiveUpAfterNoProgress != nil {
		out.GiveUpAfterNoProgress = *file.GiveUpAfterNoProgress
	}
	if file.EndOffset != nil {
		out.EndOffset = *file.EndOffset
	}
	if file.Frames != nil {
		out.Frames = *file.Frames
	}
	if len(file.Algorithms) > 0 {
		out.Algorithms = out.Algorithms[:0]
		for _, name := range file.Algorithms {
			id, ok := algorithmNames[strings.ToLower(name)]
			if !ok {
				return Settings{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
			}
			out.Algorithms = append(out.Algorithms, id)
		}
	}
	if file.SecondaryGoals != nil {
		out.SecondaryGoals = *file.SecondaryGoals
	}
	if file.UseNodes != nil {
		out.UseNodes = *file.UseNodes
	}

	if err := out.Validate(); err != nil {
		return Settings{}, err
	}

	return out, nil
}

// WriteYAML saves the settings in the same name-based YAML shape the
// loader accepts, so a session's configuration can be round-tripped.
func (s *Settings) WriteYAML(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	goal := "auto"
	for name, g := range goalNames {
		if g == s.Goal {
			goal = name

			break
		}
	}
	algorithms := make([]string, 0, len(s.Algorithms))
	for _, id := range s.Algorithms {
		for name, known := range algorithmNames {
			if known == id {
				algorithms = append(algorithms, name)

				break
			}
		}
	}

	doc := map[string]any{
		"goal":                      goal,
		"reset_to_best_iterations":  s.ResetToBestIterations,
		"give_up_after_no_progress": s.GiveUpAfterNoProgress,
		"end_offset":                s.EndOffset,
		"frames":                    s.Frames,
		"algorithms":                algorithms,
		"secondary_goals":           s.SecondaryGoals,
		"use_nodes":                 s.UseNodes,
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return os.WriteFile(path, out, 0o644)
}
