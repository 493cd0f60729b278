package main

import (
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/geometry"
)

// instanceFile is the on-disk instance format, YAML or JSON.
type instanceFile struct {
	Name   string           `json:"name,omitempty"`
	Seed   int64            `json:"seed,omitempty"`
	Points []geometry.Point `json:"points"`
}

// readInstance decodes path, or stdin when path is "-".
func readInstance(path string, stdin io.Reader) (*instanceFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading instance %s", path)
	}

	return decodeInstance(data)
}

func decodeInstance(data []byte) (*instanceFile, error) {
	var f instanceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding instance")
	}
	if len(f.Points) == 0 {
		return nil, errors.New("instance has no points")
	}

	return &f, nil
}

// writeYAML marshals v through its json tags.
func writeYAML(w io.Writer, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding output")
	}
	_, err = w.Write(out)

	return err
}
