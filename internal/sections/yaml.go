package sections

import (
	"context"
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cybertec-postgresql/orawatch/internal/log"
	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var defaultSectionsYAML []byte

// NewYAMLSectionsReader reads sections from a file or folder, the embedded defaults if path is empty.
// When sqlDir is set, a file <sqlDir>/<section>.sql replaces the SQL of that section for all versions.
func NewYAMLSectionsReader(ctx context.Context, path, sqlDir string) (Reader, error) {
	return &fileSectionsReader{
		ctx:    ctx,
		path:   path,
		sqlDir: sqlDir,
	}, nil
}

type fileSectionsReader struct {
	ctx    context.Context
	path   string
	sqlDir string
	sync.Mutex
}

func (fsr *fileSectionsReader) GetSections() (ss Sections, err error) {
	fsr.Lock()
	defer fsr.Unlock()
	if fsr.path == "" {
		err = yaml.Unmarshal(defaultSectionsYAML, &ss)
	} else {
		ss, err = fsr.loadSections()
	}
	if err != nil {
		return nil, err
	}
	for i := range ss {
		if ss[i].Affinity == "" {
			ss[i].Affinity = AffinityAll
		}
	}
	if err = ss.Validate(); err != nil {
		return nil, err
	}
	if err = fsr.applySQLDir(ss); err != nil {
		return nil, err
	}
	return ss, nil
}

func (fsr *fileSectionsReader) loadSections() (ss Sections, err error) {
	var fi fs.FileInfo
	if fi, err = os.Stat(fsr.path); err != nil {
		return
	}
	switch mode := fi.Mode(); {
	case mode.IsDir():
		err = filepath.WalkDir(fsr.path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			ext := strings.ToLower(filepath.Ext(d.Name()))
			if d.IsDir() || ext != ".yaml" && ext != ".yml" {
				return nil
			}
			var fss Sections
			if fss, err = loadSectionsFromFile(path); err == nil {
				ss = append(ss, fss...)
			}
			return err
		})
	case mode.IsRegular():
		ss, err = loadSectionsFromFile(fsr.path)
	}
	return
}

func loadSectionsFromFile(path string) (ss Sections, err error) {
	var yamlFile []byte
	if yamlFile, err = os.ReadFile(path); err != nil {
		return
	}
	err = yaml.Unmarshal(yamlFile, &ss)
	return
}

func (fsr *fileSectionsReader) applySQLDir(ss Sections) error {
	if fsr.sqlDir == "" {
		return nil
	}
	l := log.GetLogger(fsr.ctx)
	for i := range ss {
		path := filepath.Join(fsr.sqlDir, ss[i].Name+".sql")
		sql, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return err
		}
		l.WithField("section", ss[i].Name).WithField("file", path).Info("using custom SQL")
		ss[i].SQLs = SQLs{0: string(sql)}
	}
	return nil
}
