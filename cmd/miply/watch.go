package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// watch rebuilds after every write to one of the inputs. It builds
// once up front and keeps going until the watcher closes; build
// faults go to stderr rather than stopping the loop.
func watch(cmd *cobra.Command, paths []string, build func(*cobra.Command, []string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return errors.Wrap(err, path)
		}
	}

	report := func(err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "miply: %v\n", err)
		}
	}

	report(build(cmd, paths))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Infow("changed", "file", event.Name)
			report(build(cmd, paths))

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			report(werr)
		}
	}
}
