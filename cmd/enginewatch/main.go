// Command enginewatch restarts a target Go command whenever a .go file in
// the tree changes, so a developer can keep cmd/enginedemo (or any other
// entry point) running while iterating on rule observers. It has no game
// rules content of its own.
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

var (
	targetProcess   *exec.Cmd
	restartDebounce = make(chan bool, 1)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/enginewatch <command> [args...]")
		fmt.Println("Example: go run ./cmd/enginewatch ./cmd/enginedemo")
		os.Exit(1)
	}

	command := os.Args[1:]

	go handleRestart(command)
	startTarget(command)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("failed to create watcher:", err)
	}
	defer watcher.Close()

	err = filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := filepath.Base(path)
			if name == ".git" || name == "bin" || name == "node_modules" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		log.Fatal("failed to add paths to watcher:", err)
	}

	fmt.Println("watching for .go file changes...")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				fmt.Printf("changed: %s\n", event.Name)
				triggerRestart()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v\n", err)
		}
	}
}

func triggerRestart() {
	select {
	case restartDebounce <- true:
	default:
	}
}

func handleRestart(command []string) {
	for range restartDebounce {
		time.Sleep(300 * time.Millisecond)

		for {
			select {
			case <-restartDebounce:
				continue
			default:
				goto restart
			}
		}

	restart:
		stopTarget()
		startTarget(command)
	}
}

func startTarget(command []string) {
	fmt.Println("starting target...")

	if len(command) == 1 {
		targetProcess = exec.Command("go", "run", command[0])
	} else {
		args := append([]string{"run"}, command...)
		targetProcess = exec.Command("go", args...)
	}

	targetProcess.Stdout = os.Stdout
	targetProcess.Stderr = os.Stderr

	if err := targetProcess.Start(); err != nil {
		log.Printf("failed to start target: %v\n", err)
		return
	}

	fmt.Printf("target started (pid %d)\n", targetProcess.Process.Pid)
}

func stopTarget() {
	if targetProcess == nil || targetProcess.Process == nil {
		return
	}

	fmt.Printf("stopping target (pid %d)...\n", targetProcess.Process.Pid)
	targetProcess.Process.Signal(os.Interrupt)

	done := make(chan error, 1)
	go func() {
		done <- targetProcess.Wait()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		fmt.Println("graceful shutdown timed out, force killing...")
		targetProcess.Process.Kill()
		<-done
	}

	targetProcess = nil
}
