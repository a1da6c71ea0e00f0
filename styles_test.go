package vtcss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStylesUnmarshalYAML(t *testing.T) {
	doc := `
styles:
  root:
    animation: none
  card:
    new: { animationDuration: 3s }
    old:
      animationDuration: 1s
      opacity: 0
  ignored: plain-string
  partial:
    opacity: ~
    mixBlendMode: normal
`
	var cfg struct {
		Styles Styles `yaml:"styles"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	require.Len(t, cfg.Styles, 3)
	assert.Equal(t, "root", cfg.Styles[0].Name)
	assert.Equal(t, Shared(Decl("animation", "none")), cfg.Styles[0].Spec)

	assert.Equal(t, "card", cfg.Styles[1].Name)
	assert.Equal(t, StyleSpec{
		{Key: KeyNew, Block: Decl("animationDuration", "3s")},
		{Key: KeyOld, Block: Decl("animationDuration", "1s", "opacity", "0")},
	}, cfg.Styles[1].Spec)

	assert.Equal(t, "partial", cfg.Styles[2].Name)
	assert.Equal(t, Shared(Decl("mixBlendMode", "normal")), cfg.Styles[2].Spec)
}

func TestStylesUnmarshalYAMLRejectsNonMapping(t *testing.T) {
	var cfg struct {
		Styles Styles `yaml:"styles"`
	}
	err := yaml.Unmarshal([]byte("styles: [root]\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles must be a mapping")
}

func TestStylesUnmarshalYAMLAliases(t *testing.T) {
	doc := `
fade: &fade
  animation: fade 300ms
styles:
  root: *fade
  card: *fade
`
	var cfg struct {
		Styles Styles `yaml:"styles"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))
	require.Len(t, cfg.Styles, 2)
	assert.Equal(t, Shared(Decl("animation", "fade 300ms")), cfg.Styles[1].Spec)
}

func TestSplitSkipsNilBlocks(t *testing.T) {
	spec := Split(nil, Decl("opacity", "1"))
	assert.Equal(t, StyleSpec{{Key: KeyNew, Block: Decl("opacity", "1")}}, spec)
}
