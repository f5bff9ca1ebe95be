package params

import (
	"path/filepath"

	"github.com/easyada/cardano-wallet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig watch the config file and reload on write
func WatchConfig() {
	if ConfigFile == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("fsnotify: new watcher failed", "err", err)
		return
	}

	go startWatcher(watcher)

	file := filepath.Clean(ConfigFile)
	dir := filepath.Dir(file)
	err = watcher.Add(dir)
	if err != nil {
		log.Error("fsnotify: add config path failed", "err", err)
		return
	}
	log.Infof("fsnotify: start to watch config file %v", file)
}

func startWatcher(watcher *fsnotify.Watcher) {
	defer watcher.Close()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok { // channel was closed
				log.Error("fsnotify: channel was closed")
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(ConfigFile) {
				continue
			}
			log.Trace("fsnotify: watcher event", "file", ev.Name, "op", ev.Op)
			if ev.Has(fsnotify.Write) {
				ReloadConfig()
			}
		case err, ok := <-watcher.Errors:
			if !ok { // channel was closed
				log.Error("fsnotify: channel was closed")
				return
			}
			log.Error("fsnotify: watcher error", "err", err)
		}
	}
}
