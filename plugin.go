package vtcss

import (
	"fmt"
	"io"
	"os"
)

const (
	// ReducedMotionQuery wraps the rule that disables every view-transition animation
	ReducedMotionQuery = "@media (prefers-reduced-motion)"

	// UtilityName is the prefix of the dynamic transition-name utility
	UtilityName = "vt-name"

	// NoneClass is the static utility clearing the transition name
	NoneClass = ".vt-name-none"

	// ReservedName is the document-level transition name
	ReservedName = "root"

	// ReservedNameWarning is written when a utility targets ReservedName
	ReservedNameWarning = `[WARNING] Remove the ".vt-name-[root]" CSS class. "root" is reserved for document-level ::view-transition element.`

	allPseudoElements = "::view-transition-group(*),::view-transition-old(*),::view-transition-new(*)"
)

// Options configures the plugin. The zero value is the default configuration.
type Options struct {
	// DisableAllReduceMotion adds a prefers-reduced-motion rule turning off
	// every view-transition animation.
	DisableAllReduceMotion bool
	// Styles holds per-name pseudo-element styles, applied in order.
	Styles Styles
	// Warnings receives advisory diagnostics. Defaults to os.Stderr.
	Warnings io.Writer
}

// UtilityFunc turns a utility value into declarations
type UtilityFunc func(value string) Declarations

// Host receives the plugin's registrations
type Host interface {
	AddBase(rules *RuleMap)
	AddUtilities(rules []*RuleMap)
	MatchUtilities(utilities map[string]UtilityFunc)
}

// HostFuncs adapts plain functions to Host. Nil functions are skipped.
type HostFuncs struct {
	AddBaseFunc        func(rules *RuleMap)
	AddUtilitiesFunc   func(rules []*RuleMap)
	MatchUtilitiesFunc func(utilities map[string]UtilityFunc)
}

// AddBase calls AddBaseFunc
func (h HostFuncs) AddBase(rules *RuleMap) {
	if h.AddBaseFunc != nil {
		h.AddBaseFunc(rules)
	}
}

// AddUtilities calls AddUtilitiesFunc
func (h HostFuncs) AddUtilities(rules []*RuleMap) {
	if h.AddUtilitiesFunc != nil {
		h.AddUtilitiesFunc(rules)
	}
}

// MatchUtilities calls MatchUtilitiesFunc
func (h HostFuncs) MatchUtilities(utilities map[string]UtilityFunc) {
	if h.MatchUtilitiesFunc != nil {
		h.MatchUtilitiesFunc(utilities)
	}
}

// PluginFunc registers the plugin's rules with a host
type PluginFunc func(host Host)

// New returns the plugin for opts. Called without options it uses the
// defaults; only the first Options value is used.
func New(opts ...Options) PluginFunc {
	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	warnings := options.Warnings
	if warnings == nil {
		warnings = os.Stderr
	}

	return func(host Host) {
		host.MatchUtilities(TransitionNameUtilities(warnings))
		host.AddUtilities(StaticUtilities())
		host.AddBase(BuildBase(options))
	}
}

// BuildBase returns the base styles for options: the reduced-motion rule
// followed by the named transition styles. Named styles win on key collision.
func BuildBase(options Options) *RuleMap {
	base := BuildReducedMotionBase(options.DisableAllReduceMotion)
	base.Extend(BuildNamedTransitionBase(options.Styles))
	return base
}

// BuildReducedMotionBase returns the rule disabling all view-transition
// animations under prefers-reduced-motion, or an empty map when disable is false.
func BuildReducedMotionBase(disable bool) *RuleMap {
	base := NewRuleMap()
	if !disable {
		return base
	}

	inner := NewRuleMap()
	inner.Merge(allPseudoElements, Decl("animation", "none !important"))
	base.Nest(ReducedMotionQuery, inner)
	return base
}

// BuildNamedTransitionBase maps each named StyleSpec to pseudo-element rules.
// Malformed entries are skipped.
func BuildNamedTransitionBase(styles Styles) *RuleMap {
	base := NewRuleMap()

	for _, named := range styles {
		if named.Name == "" || len(named.Spec) == 0 {
			continue
		}

		oldSelector := fmt.Sprintf("::view-transition-old(%s)", named.Name)
		newSelector := fmt.Sprintf("::view-transition-new(%s)", named.Name)
		sharedSelector := oldSelector + "," + newSelector

		for _, entry := range named.Spec {
			switch {
			case entry.Key == "":
				continue
			case entry.Key == KeyOld || entry.Key == KeyNew:
				if entry.Block == nil {
					continue
				}
				selector := oldSelector
				if entry.Key == KeyNew {
					selector = newSelector
				}
				base.Merge(selector, entry.Block)
			case entry.Block != nil:
				continue
			default:
				base.Merge(sharedSelector, Decl(entry.Key, entry.Value))
			}
		}
	}

	return base
}

// StaticUtilities returns the fixed utility rules
func StaticUtilities() []*RuleMap {
	none := NewRuleMap()
	none.Merge(NoneClass, Decl("view-transition-name", "none"))
	return []*RuleMap{none}
}

// TransitionNameUtilities returns the dynamic vt-name utility.
// Using ReservedName writes a warning to w but still yields the declaration.
func TransitionNameUtilities(w io.Writer) map[string]UtilityFunc {
	return map[string]UtilityFunc{
		UtilityName: func(value string) Declarations {
			if value == ReservedName && w != nil {
				fmt.Fprintln(w, ReservedNameWarning)
			}
			return Decl("viewTransitionName", value)
		},
	}
}
