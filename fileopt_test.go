package cliargs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type serverConf struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port int    `json:"port" yaml:"port" toml:"port"`
}

func writeConfFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileOptFormats(t *testing.T) {
	t.Run("toml by suffix", func(t *testing.T) {
		path := writeConfFile(t, "conf.toml", "host = \"a\"\nport = 1\n")
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.NoError(t, f.FromString(path))
		assert.Equal(t, serverConf{Host: "a", Port: 1}, *f.Get())
	})

	t.Run("yaml by suffix", func(t *testing.T) {
		path := writeConfFile(t, "conf.yaml", "host: b\nport: 2\n")
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.NoError(t, f.FromString(path))
		assert.Equal(t, serverConf{Host: "b", Port: 2}, *f.Get())
	})

	t.Run("json by suffix", func(t *testing.T) {
		path := writeConfFile(t, "conf.json", `{"host":"c","port":3}`)
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.NoError(t, f.FromString(path))
		assert.Equal(t, serverConf{Host: "c", Port: 3}, *f.Get())
	})

	t.Run("unknown suffix tries every decoder", func(t *testing.T) {
		path := writeConfFile(t, "conf", "host = \"d\"\nport = 4\n")
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.NoError(t, f.FromString(path))
		assert.Equal(t, serverConf{Host: "d", Port: 4}, *f.Get())
	})

	t.Run("missing file", func(t *testing.T) {
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.Error(t, f.FromString(filepath.Join(t.TempDir(), "nope.toml")))
		assert.Nil(t, f.Get())
	})

	t.Run("undecodable content", func(t *testing.T) {
		path := writeConfFile(t, "conf", "@@@@")
		var f FileOpt[serverConf, DisableLiveUpdate]
		assert.Error(t, f.FromString(path))
	})
}

func TestFileOptParseOnce(t *testing.T) {
	path := writeConfFile(t, "conf.json", `{"host":"a","port":1}`)
	var f FileOpt[serverConf, DisableLiveUpdate]
	assert.NoError(t, f.FromString(path))
	assert.Nil(t, f.UpdateEvents())

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on the second FromString")
		}
	}()
	_ = f.FromString(path)
}

func TestFileOptLiveUpdate(t *testing.T) {
	path := writeConfFile(t, "conf.json", `{"host":"a","port":1}`)

	var f FileOpt[serverConf, EnableLiveUpdate]
	if err := f.FromString(path); err != nil {
		t.Fatal(err)
	}
	oldPtr := f.Get()
	assert.Equal(t, serverConf{Host: "a", Port: 1}, *oldPtr)

	if err := os.WriteFile(path, []byte(`{"host":"b","port":2}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-f.UpdateEvents():
	case <-time.After(5 * time.Second):
		t.Fatal("no update event")
	}
	assert.Equal(t, serverConf{Host: "b", Port: 2}, *f.Get())
	// a pointer taken before the reload still reads the old value
	assert.Equal(t, serverConf{Host: "a", Port: 1}, *oldPtr)
}

func TestFileOptAsOption(t *testing.T) {
	path := writeConfFile(t, "conf.toml", "host = \"a\"\nport = 1\n")

	type flags struct {
		Conf FileOpt[serverConf, DisableLiveUpdate] `cfg:"conf" desc:"config file" arg:"<file>"`
	}

	cmd, _ := CmdFrom([]string{"app", "--conf=" + path})
	var fl flags
	if err := ParseFor(&cmd, &fl); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, serverConf{Host: "a", Port: 1}, *fl.Conf.Get())
	assert.True(t, cmd.HasOpt("Conf"))
}
