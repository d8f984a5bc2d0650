package level

import (
	_ "embed" // default layout
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

//go:embed default_level.json
var defaultLevel []byte

// Default returns the built-in layout used when no level can be found
func Default() Layout {
	layout, err := Parse(defaultLevel)
	if err != nil {
		panic(fmt.Sprintf("built-in level is broken: %v", err))
	}
	return layout
}

// FileProvider reads level_<id>.json, .yaml or .yml files from Dir
type FileProvider struct {
	Dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

// Level reads the file for level id
func (p *FileProvider) Level(id int) (Layout, error) {
	return p.read(fmt.Sprintf("level_%d", id))
}

// Default reads default_level from Dir, falling back to the built-in layout
func (p *FileProvider) Default() (Layout, error) {
	layout, err := p.read("default_level")
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return layout, err
}

func (p *FileProvider) read(name string) (Layout, error) {
	parsers := []struct {
		ext   string
		parse func([]byte) (Layout, error)
	}{
		{".json", Parse},
		{".yaml", ParseYAML},
		{".yml", ParseYAML},
	}

	for _, candidate := range parsers {
		path := filepath.Join(p.Dir, name+candidate.ext)
		data, err := ioutil.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Layout{}, err
		}

		layout, err := candidate.parse(data)
		if err != nil {
			return Layout{}, fmt.Errorf("%s: %w", path, err)
		}
		return layout, nil
	}

	return Layout{}, fmt.Errorf("%w: %s in %s", ErrNotFound, name, p.Dir)
}
