package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/piwi3910/creasefit/internal/model"
)

// LoadProblem reads a problem file. The problem is named after the file.
func LoadProblem(path string) (model.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Problem{}, err
	}
	defer f.Close()

	p, err := model.ReadProblem(f)
	if err != nil {
		return model.Problem{}, errors.Wrapf(err, "reading %s", path)
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p, nil
}

// SaveProblem writes a problem in its text form.
func SaveProblem(path string, p model.Problem) error {
	return writeFile(path, func(f *os.File) error {
		_, err := p.WriteTo(f)
		return err
	})
}

// LoadSolution reads a solution file.
func LoadSolution(path string) (model.Solution, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Solution{}, err
	}
	defer f.Close()

	s, err := model.ReadSolution(f)
	if err != nil {
		return model.Solution{}, errors.Wrapf(err, "reading %s", path)
	}
	return s, nil
}

// SaveSolution writes a solution in its text form, creating parent
// directories as needed.
func SaveSolution(path string, s model.Solution) error {
	return writeFile(path, func(f *os.File) error {
		_, err := s.WriteTo(f)
		return err
	})
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
