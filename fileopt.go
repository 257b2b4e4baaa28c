package cliargs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// LiveUpdateOpt is the type restriction of L in FileOpt[T, L].
// EnableLiveUpdate and DisableLiveUpdate are the two types implementing
// it. This interface SHOULD NOT be implemented by users.
type LiveUpdateOpt interface {
	isWatched() bool
}

// EnableLiveUpdate makes a FileOpt reload T when the file changes.
type EnableLiveUpdate struct{}

func (EnableLiveUpdate) isWatched() bool { return true }

// DisableLiveUpdate makes a FileOpt read the file only once.
type DisableLiveUpdate struct{}

func (DisableLiveUpdate) isWatched() bool { return false }

var (
	_ OptParser = &FileOpt[any, EnableLiveUpdate]{}
	_ OptParser = &FileOpt[any, DisableLiveUpdate]{}
)

// FileOpt loads T from the configuration file named by an option
// argument. It implements OptParser, so a FileOpt field of an option
// store takes a file path on the command line and fills T from the file
// content. TOML, YAML and JSON are supported; the decoder is chosen by
// the file suffix, or every decoder is tried in turn.
//
// With L = EnableLiveUpdate the file is watched and T is reloaded when
// it changes. Get is then safe to call from any goroutine.
type FileOpt[T any, L LiveUpdateOpt] struct {
	// go vet will warn if user try to copy instance.

	parsed atomic.Bool

	// The loaded value is held behind a pointer so that a reload can
	// swap it atomically while values returned by earlier Get() calls
	// stay valid.
	atomT atomic.Pointer[T]
	t     *T

	// these are for live-update
	liveUpdate L
	events     chan fsnotify.Event
}

// this is a generic unmarshal function
// json, yaml, toml all implemented this
type unmarshalFn func(data []byte, v any) error

// FromString reads the file at path and fills T from its content.
func (f *FileOpt[T, L]) FromString(path string) error {
	if !f.parsed.CompareAndSwap(false, true) {
		// make sure this method is called only once
		panic("FileOpt[T,L].FromString() is called more than once")
	}

	err := f.load(path)
	if err != nil {
		return err
	}

	// the watcher starts only once
	// because FromString should be called only once
	if f.liveUpdate.isWatched() {
		f.events = make(chan fsnotify.Event, 2)
		f.watch(path)
	}
	return nil
}

func (f *FileOpt[T, L]) load(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decodeOrder := []unmarshalFn{
		json.Unmarshal, yaml.Unmarshal, toml.Unmarshal,
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decodeOrder = []unmarshalFn{yaml.Unmarshal}
	} else if strings.HasSuffix(path, ".json") {
		decodeOrder = []unmarshalFn{json.Unmarshal}
	} else if strings.HasSuffix(path, ".toml") {
		decodeOrder = []unmarshalFn{toml.Unmarshal}
	}

	value, err := decodeByOrder[T](content, decodeOrder)
	if err != nil {
		return err
	}

	if f.liveUpdate.isWatched() {
		f.atomT.Store(&value)
	} else {
		f.t = &value
	}
	return nil
}

// Get returns the inner T instance, nil before the first successful
// FromString.
func (f *FileOpt[T, L]) Get() *T {
	if f.liveUpdate.isWatched() {
		return f.atomT.Load()
	}
	return f.t
}

func (f *FileOpt[T, L]) watch(filename string) {
	configFile := filepath.Clean(filename)
	configDir, _ := filepath.Split(configFile)
	realConfigFile, _ := filepath.EvalSymlinks(filename)

	// we have to watch the entire directory to pick up renames/atomic saves in a cross-platform way
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("failed to create watcher: %s", err)
		return
	}

	if err := watcher.Add(configDir); err != nil {
		log.Printf("watch add conf dir err %v", err)
		watcher.Close()
		return
	}

	go func(watcher *fsnotify.Watcher) {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok { // 'Events' channel is closed
					return
				}
				currentConfigFile, _ := filepath.EvalSymlinks(filename)
				// we only care about the config file with the following cases:
				// 1 - if the config file was modified or created
				// 2 - if the real path to the config file changed (eg: k8s ConfigMap replacement)
				if (filepath.Clean(event.Name) == configFile &&
					(event.Has(fsnotify.Write) || event.Has(fsnotify.Create))) ||
					(currentConfigFile != "" && currentConfigFile != realConfigFile) {
					realConfigFile = currentConfigFile
					err := f.load(filename)
					if err != nil {
						log.Printf("read config file error: %s", err)
					}
					select {
					case f.events <- event:
					default:
						// if f.events blocks, discard this event
					}
				} else if filepath.Clean(event.Name) == configFile && event.Has(fsnotify.Remove) {
					return
				}

			case err, ok := <-watcher.Errors:
				if ok { // 'Errors' channel is not closed
					log.Printf("watcher error: %s", err)
				}
				return
			}
		}
	}(watcher)
}

// UpdateEvents returns a channel of fsnotify.Events. An event is sent
// to this channel once the file changes and was reloaded.
func (f *FileOpt[T, L]) UpdateEvents() <-chan fsnotify.Event {
	// Not using a change callback because callbacks may run
	// concurrently in an uncontrolled way when changes come fast.
	// Channels don't.
	return f.events
}

type errList []error

func (el errList) Error() string {
	ret := []string{}
	for _, e := range el {
		ret = append(ret, fmt.Sprintf("[%s]", e.Error()))
	}
	return strings.Join(ret, " ")
}

func decodeByOrder[T any](
	content []byte, decodeOrder []unmarshalFn,
) (T, error) {
	var t T
	elist := []error{}
	for _, unmarshal := range decodeOrder {
		err := unmarshal(content, &t)
		if err == nil {
			return t, nil
		} else {
			elist = append(elist, err)
		}
	}
	return t, errList(elist)
}
