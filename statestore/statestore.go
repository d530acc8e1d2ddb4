package statestore

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/dimonomid/gantt/core"
	"github.com/dimonomid/gantt/log"
)

// Store persists the chart view state (scale and scroll position) in a yaml
// file, separately for every data set. It implements core.ViewStateStore.
type Store struct {
	params StoreParams
	logger *log.Logger

	mtx sync.Mutex
	// views is only used when Filename is empty.
	views map[string]savedItem
}

type StoreParams struct {
	// Filename is where to load the state from and write it to. If it's
	// empty, the state is only kept in RAM and not persisted anywhere.
	Filename string

	// Key identifies the data set, typically it's the path to the data file.
	// Views of different data sets don't affect each other.
	Key string

	Logger *log.Logger
}

type stateFile struct {
	Views map[string]savedItem `yaml:"views"`
}

type savedItem struct {
	View    core.SavedView `yaml:",inline"`
	SavedAt time.Time      `yaml:"saved_at"`
}

var _ core.ViewStateStore = &Store{}

func New(params StoreParams) *Store {
	return &Store{
		params: params,
		logger: params.Logger.WithNamespaceAppended("statestore"),
		views:  map[string]savedItem{},
	}
}

// LoadViewState returns the view saved for the Key.
func (s *Store) LoadViewState() (core.SavedView, bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sf, err := s.load()
	if err != nil {
		return core.SavedView{}, false, errors.Trace(err)
	}

	item, ok := sf.Views[s.params.Key]
	if !ok {
		return core.SavedView{}, false, nil
	}

	return item.View, true, nil
}

// SaveViewState saves the view for the Key, keeping views of other keys
// intact. If the file is corrupted, it's overwritten with just this view.
func (s *Store) SaveViewState(v core.SavedView) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sf, err := s.load()
	if err != nil {
		if _, ok := errors.Cause(err).(*corruptedFileError); !ok {
			return errors.Trace(err)
		}

		s.logger.Warnf("Overwriting corrupted state file: %s", err.Error())
		sf = &stateFile{Views: map[string]savedItem{}}
	}

	sf.Views[s.params.Key] = savedItem{
		View:    v,
		SavedAt: time.Now(),
	}

	return errors.Trace(s.save(sf))
}

type corruptedFileError struct {
	filename string
	err      error
}

func (e *corruptedFileError) Error() string {
	return fmt.Sprintf("unmarshaling yaml from %s: %s", e.filename, e.err.Error())
}

// load must be called with mtx locked. A missing file is not an error.
func (s *Store) load() (*stateFile, error) {
	sf := &stateFile{Views: map[string]savedItem{}}

	if s.params.Filename == "" {
		for k, v := range s.views {
			sf.Views[k] = v
		}
		return sf, nil
	}

	data, err := ioutil.ReadFile(s.params.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			return sf, nil
		}

		return nil, errors.Annotatef(err, "reading state file %s", s.params.Filename)
	}

	if err := yaml.Unmarshal(data, sf); err != nil {
		return nil, &corruptedFileError{filename: s.params.Filename, err: err}
	}

	if sf.Views == nil {
		sf.Views = map[string]savedItem{}
	}

	return sf, nil
}

// save must be called with mtx locked. The file is replaced atomically, so
// that a crash in the middle doesn't leave a truncated file.
func (s *Store) save(sf *stateFile) error {
	if s.params.Filename == "" {
		s.views = sf.Views
		return nil
	}

	data, err := yaml.Marshal(sf)
	if err != nil {
		return errors.Trace(err)
	}

	dir := filepath.Dir(s.params.Filename)
	tmp, err := ioutil.TempFile(dir, filepath.Base(s.params.Filename)+".tmp*")
	if err != nil {
		return errors.Annotatef(err, "creating temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Annotatef(err, "writing %s", tmpName)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Annotatef(err, "closing %s", tmpName)
	}

	if err := os.Rename(tmpName, s.params.Filename); err != nil {
		os.Remove(tmpName)
		return errors.Annotatef(err, "renaming %s to %s", tmpName, s.params.Filename)
	}

	return nil
}
