package jsplib

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Parse reads a JSPLIB text instance from r.
func Parse(r io.Reader) (*Shop, error) {
	var (
		sc        = bufio.NewScanner(r)
		line      int
		sized     bool
		nJobs, nM int
		shop      = &Shop{}
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := atoiAll(strings.Fields(text))
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: %v", line, err)
		}

		if !sized {
			if len(fields) != 2 {
				return nil, errors.Wrapf(ErrFormat, "line %d: want \"jobs machines\", got %d fields", line, len(fields))
			}
			nJobs, nM, sized = fields[0], fields[1], true
			continue
		}

		if len(fields) != 2*nM {
			return nil, errors.Wrapf(ErrFormat, "line %d: want %d fields, got %d", line, 2*nM, len(fields))
		}
		job := make([]Op, nM)
		for i := range job {
			job[i] = Op{Machine: fields[2*i], Duration: fields[2*i+1]}
		}
		shop.Jobs = append(shop.Jobs, job)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "jsplib: read")
	}
	if !sized {
		return nil, errors.Wrap(ErrFormat, "missing size line")
	}
	if len(shop.Jobs) != nJobs {
		return nil, errors.Wrapf(ErrFormat, "header declares %d jobs, found %d", nJobs, len(shop.Jobs))
	}
	if err := shop.Validate(); err != nil {
		return nil, err
	}

	return shop, nil
}

// ParseFile reads a JSPLIB text instance from path.
func ParseFile(path string) (*Shop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "jsplib: open %s", path)
	}
	defer f.Close()

	shop, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return shop, nil
}

// LoadIndex reads the JSPLIB instance index (a JSON array).
func LoadIndex(path string) ([]Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "jsplib: read index %s", path)
	}
	var out []Instance
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(ErrFormat, "index %s: %v", path, err)
	}

	return out, nil
}

// Validate checks that every job visits every machine exactly once and
// that durations are non-negative.
func (s *Shop) Validate() error {
	m := s.NumMachines()
	if len(s.Jobs) == 0 || m == 0 {
		return errors.Wrap(ErrShape, "empty shop")
	}
	seen := make([]int, m)
	for j, job := range s.Jobs {
		if len(job) != m {
			return errors.Wrapf(ErrShape, "job %d has %d operations, want %d", j, len(job), m)
		}
		for _, op := range job {
			if op.Machine < 0 || op.Machine >= m {
				return errors.Wrapf(ErrShape, "job %d: machine %d out of range", j, op.Machine)
			}
			if seen[op.Machine] == j+1 {
				return errors.Wrapf(ErrShape, "job %d visits machine %d twice", j, op.Machine)
			}
			seen[op.Machine] = j + 1
			if op.Duration < 0 {
				return errors.Wrapf(ErrShape, "job %d: negative duration %d", j, op.Duration)
			}
		}
	}

	return nil
}

// Format writes s in JSPLIB text form.
func Format(w io.Writer, s *Shop) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(s.NumJobs()) + " " + strconv.Itoa(s.NumMachines()) + "\n")
	for _, job := range s.Jobs {
		for i, op := range job {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(op.Machine) + " " + strconv.Itoa(op.Duration))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
