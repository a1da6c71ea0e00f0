package vtcss

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReducedMotionBase(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		base := BuildReducedMotionBase(true)
		require.Equal(t, []string{ReducedMotionQuery}, base.Keys())

		body, ok := base.Get(ReducedMotionQuery)
		require.True(t, ok)
		require.NotNil(t, body.Rules)

		inner, ok := body.Rules.Get("::view-transition-group(*),::view-transition-old(*),::view-transition-new(*)")
		require.True(t, ok)
		assert.Equal(t, Decl("animation", "none !important"), inner.Declarations)
	})

	t.Run("disabled", func(t *testing.T) {
		assert.Equal(t, 0, BuildReducedMotionBase(false).Len())
	})
}

func TestBuildNamedTransitionBase(t *testing.T) {
	tests := []struct {
		name   string
		styles Styles
		want   map[string]Declarations
		order  []string
	}{
		{
			name: "shared properties",
			styles: Styles{
				{Name: "root", Spec: Shared(Decl("animation", "none"))},
			},
			want: map[string]Declarations{
				"::view-transition-old(root),::view-transition-new(root)": Decl("animation", "none"),
			},
			order: []string{"::view-transition-old(root),::view-transition-new(root)"},
		},
		{
			name: "separate old and new",
			styles: Styles{
				{Name: "root", Spec: Split(
					Decl("animationDuration", "1s"),
					Decl("animationDuration", "3s"),
				)},
			},
			want: map[string]Declarations{
				"::view-transition-old(root)": Decl("animationDuration", "1s"),
				"::view-transition-new(root)": Decl("animationDuration", "3s"),
			},
			order: []string{"::view-transition-old(root)", "::view-transition-new(root)"},
		},
		{
			name: "several shared properties merge into one rule",
			styles: Styles{
				{Name: "card", Spec: Shared(Decl("animation", "none", "mixBlendMode", "normal"))},
			},
			want: map[string]Declarations{
				"::view-transition-old(card),::view-transition-new(card)": Decl("animation", "none", "mixBlendMode", "normal"),
			},
			order: []string{"::view-transition-old(card),::view-transition-new(card)"},
		},
		{
			name: "entry order decides rule order",
			styles: Styles{
				{Name: "hero", Spec: StyleSpec{
					{Key: KeyNew, Block: Decl("opacity", "1")},
					{Key: "animation", Value: "none"},
					{Key: KeyOld, Block: Decl("opacity", "0")},
				}},
			},
			want: map[string]Declarations{
				"::view-transition-new(hero)":                             Decl("opacity", "1"),
				"::view-transition-old(hero),::view-transition-new(hero)": Decl("animation", "none"),
				"::view-transition-old(hero)":                             Decl("opacity", "0"),
			},
			order: []string{
				"::view-transition-new(hero)",
				"::view-transition-old(hero),::view-transition-new(hero)",
				"::view-transition-old(hero)",
			},
		},
		{
			name: "duplicate names merge, last write wins",
			styles: Styles{
				{Name: "root", Spec: Shared(Decl("animation", "none", "opacity", "1"))},
				{Name: "root", Spec: Shared(Decl("animation", "fade 1s"))},
			},
			want: map[string]Declarations{
				"::view-transition-old(root),::view-transition-new(root)": Decl("animation", "fade 1s", "opacity", "1"),
			},
			order: []string{"::view-transition-old(root),::view-transition-new(root)"},
		},
		{
			name: "malformed entries are skipped",
			styles: Styles{
				{Name: "", Spec: Shared(Decl("animation", "none"))},
				{Name: "empty"},
				{Name: "bad", Spec: StyleSpec{
					{Key: KeyOld, Value: "not-a-block"},
					{Key: "opacity", Block: Decl("x", "y")},
					{Key: "", Value: "none"},
				}},
			},
			want:  map[string]Declarations{},
			order: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := BuildNamedTransitionBase(tt.styles)
			assert.ElementsMatch(t, tt.order, base.Keys())
			assert.Equal(t, len(tt.order), base.Len())
			for i, key := range base.Keys() {
				assert.Equal(t, tt.order[i], key)
			}
			for selector, decls := range tt.want {
				body, ok := base.Get(selector)
				require.True(t, ok, "selector %s not found", selector)
				assert.Equal(t, decls, body.Declarations)
			}
		})
	}
}

func TestBuildBase(t *testing.T) {
	base := BuildBase(Options{
		DisableAllReduceMotion: true,
		Styles:                 Styles{{Name: "root", Spec: Shared(Decl("animation", "none"))}},
	})
	assert.Equal(t, []string{
		ReducedMotionQuery,
		"::view-transition-old(root),::view-transition-new(root)",
	}, base.Keys())

	assert.Equal(t, 0, BuildBase(Options{}).Len())
}

func TestBuildBaseIsIdempotent(t *testing.T) {
	opts := Options{
		DisableAllReduceMotion: true,
		Styles: Styles{
			{Name: "root", Spec: Split(Decl("animationDuration", "1s"), Decl("animationDuration", "3s"))},
		},
	}

	first, err := BuildBase(opts).MarshalJSON()
	require.NoError(t, err)
	second, err := BuildBase(opts).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestStaticUtilities(t *testing.T) {
	utils := StaticUtilities()
	require.Len(t, utils, 1)

	body, ok := utils[0].Get(NoneClass)
	require.True(t, ok)
	assert.Equal(t, Decl("view-transition-name", "none"), body.Declarations)
}

func TestTransitionNameUtilities(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		wantWarnings int
	}{
		{name: "arbitrary value", value: "foo", wantWarnings: 0},
		{name: "value needing escape", value: "a.b/c", wantWarnings: 0},
		{name: "reserved name", value: "root", wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			utils := TransitionNameUtilities(&buf)
			fn, ok := utils[UtilityName]
			require.True(t, ok)

			got := fn(tt.value)
			assert.Equal(t, Decl("viewTransitionName", tt.value), got)
			assert.Equal(t, tt.wantWarnings, strings.Count(buf.String(), ReservedNameWarning))
		})
	}
}

func TestTransitionNameUtilitiesWarnsPerInvocation(t *testing.T) {
	var buf bytes.Buffer
	fn := TransitionNameUtilities(&buf)[UtilityName]

	fn(ReservedName)
	fn(ReservedName)
	assert.Equal(t, 2, strings.Count(buf.String(), ReservedNameWarning))
}

func TestNewRegistersInOrder(t *testing.T) {
	var calls []string
	var base *RuleMap
	var utilities map[string]UtilityFunc

	host := HostFuncs{
		MatchUtilitiesFunc: func(u map[string]UtilityFunc) {
			calls = append(calls, "matchUtilities")
			utilities = u
		},
		AddUtilitiesFunc: func(_ []*RuleMap) {
			calls = append(calls, "addUtilities")
		},
		AddBaseFunc: func(rules *RuleMap) {
			calls = append(calls, "addBase")
			base = rules
		},
	}

	var warnings bytes.Buffer
	New(Options{DisableAllReduceMotion: true, Warnings: &warnings})(host)

	assert.Equal(t, []string{"matchUtilities", "addUtilities", "addBase"}, calls)
	assert.Equal(t, []string{ReducedMotionQuery}, base.Keys())

	utilities[UtilityName](ReservedName)
	assert.Contains(t, warnings.String(), ReservedNameWarning)
}

func TestNewWithoutOptions(t *testing.T) {
	var base *RuleMap
	New()(HostFuncs{AddBaseFunc: func(rules *RuleMap) { base = rules }})

	require.NotNil(t, base)
	assert.Equal(t, 0, base.Len())
}
