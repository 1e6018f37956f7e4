package tree_installer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	KB int64 = 1 << (10 * (iota + 1))
	MB
	GB
	TB
)

// ErrSourceMissing is returned when the script to install does not exist in
// the working directory.
var ErrSourceMissing = errors.New("source file missing")

// The fixed pipeline: stage the copy, mark it executable, move it into the
// chosen directory.
var installStepNames = []string{"stage", "chmod", "move"}

type (
	// InstallStatus is a message struct that gets passed around at various
	// times in the installation process. All fields are optional and contain
	// the current step, whether the installer as a whole is finished or not,
	// or whether it's been aborted and rolled back.
	InstallStatus struct {
		Step    string
		Done    bool
		Aborted bool
	}
	// Installer stages a copy of the source script next to it, marks the copy
	// executable and moves it into a target directory. It reports progress
	// through a status channel and a progress callback, and can roll back the
	// staged copy when interrupted.
	Installer struct {
		// Target is the directory the staged file will be moved into. Empty
		// means no move: the executable copy stays in the working directory.
		Target string
		// WorkDir is the directory the source file is expected in. Defaults
		// to the process working directory.
		WorkDir string
		// Home is the base for the fallback install directory. Defaults to
		// the invoking user's home directory.
		Home    string
		Done    bool
		Aborted bool

		config              *Config
		staged              string
		moved               string
		totalSize           int64
		stepsDone           int
		err                 error
		statusChannel       chan InstallStatus
		abortChannel        chan bool
		abortConfirmChannel chan bool
		actionLock          sync.Mutex
		progressFunction    func(InstallStatus)
		confirmFunction     func(string) bool
	}
)

// NewInstaller creates a new Installer for the source file named in the
// config. Call SelectTarget() to pick the install directory, then
// StartInstall():
//
//	installer := NewInstaller(config)
//	installer.SelectTarget(argumentDir)
//	installer.StartInstall()
//	/* some watch loop with 'installer.Status()' */
//	installer.WaitForDone()
func NewInstaller(config *Config) *Installer {
	workDir, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return &Installer{
		WorkDir:             workDir,
		Home:                home,
		config:              config,
		statusChannel:       make(chan InstallStatus, 1),
		abortChannel:        make(chan bool, 1),
		abortConfirmChannel: make(chan bool, 1),
		progressFunction:    func(status InstallStatus) {},
		confirmFunction:     func(path string) bool { return false },
	}
}

// SelectTarget decides the install directory, in order of precedence:
//
//  1. the candidate (commandline argument), if it names an existing directory
//  2. the fallback directory (Home + the configured folder name), if it exists
//  3. none; the staged executable stays in the working directory
//
// A candidate that is not a directory is not an error, it logs and falls
// through to the fallback. The chosen directory (or "") is set as Target and
// returned.
func (i *Installer) SelectTarget(candidate string) string {
	if candidate != "" {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			i.Target = candidate
			return i.Target
		}
		log.Printf("Not a directory, ignoring: '%s'", candidate)
	}
	fallback := filepath.Join(i.Home, i.config.FallbackDir)
	if info, err := os.Stat(fallback); err == nil && info.IsDir() {
		i.Target = fallback
		return i.Target
	}
	i.Target = ""
	return i.Target
}

// StartInstall runs the installer in a separate goroutine and returns
// immediately. Use Status() or WaitForDone() to follow the progress, and
// Error() for the outcome.
func (i *Installer) StartInstall() { go i.install() }

// install runs the three installation steps in order, checking for an abort
// request in between.
func (i *Installer) install() error {
	i.Done = false
	i.actionLock.Lock()
	defer i.actionLock.Unlock()
	steps := map[string]func() error{
		"stage": i.stage,
		"chmod": i.makeExecutable,
		"move":  i.move,
	}
	for _, name := range installStepNames {
		select {
		case <-i.abortChannel:
			i.abortConfirmChannel <- true
			return i.err
		default:
			status := InstallStatus{Step: name}
			i.setStatus(status)
			i.progressFunction(status)
			if err := steps[name](); err != nil {
				i.err = err
				i.Done = true
				i.setStatus(InstallStatus{Done: true})
				return err
			}
			i.stepsDone++
		}
	}
	i.Done = true
	i.setStatus(InstallStatus{Done: true})
	return nil
}

// stage copies the source file to its installed name (extension stripped) in
// the working directory.
func (i *Installer) stage() error {
	src := filepath.Join(i.WorkDir, i.config.SourceFilename())
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", ErrSourceMissing, src)
		}
		return err
	}
	i.totalSize = info.Size()
	if avail := osDiskSpace(i.WorkDir); avail >= 0 && avail < i.totalSize {
		return fmt.Errorf("not enough disk space in '%s'", i.WorkDir)
	}
	dst := filepath.Join(i.WorkDir, i.config.SourceBase)
	if err := copyFile(src, dst, 0644); err != nil {
		return err
	}
	i.staged = dst
	return nil
}

// makeExecutable sets the executable bits on the staged copy.
func (i *Installer) makeExecutable() error {
	return os.Chmod(i.staged, 0755)
}

// move relocates the staged copy into the target directory. An existing file
// of the same name there is only overwritten if the confirm function agrees;
// a declined overwrite leaves the staged copy where it is and is not an
// error. Rename across a filesystem boundary falls back to copy and remove.
func (i *Installer) move() error {
	if i.Target == "" {
		return nil
	}
	if !osFileWriteAccess(i.Target) {
		return fmt.Errorf("install directory is not writable: '%s'", i.Target)
	}
	dest := filepath.Join(i.Target, i.config.SourceBase)
	if _, err := os.Stat(dest); err == nil {
		if !i.confirmFunction(dest) {
			log.Printf("Not overwriting '%s'", dest)
			return nil
		}
	}
	if err := os.Rename(i.staged, dest); err != nil {
		if copyErr := copyFile(i.staged, dest, 0755); copyErr != nil {
			return err
		}
		if rmErr := os.Remove(i.staged); rmErr != nil {
			return rmErr
		}
	}
	i.moved = dest
	return nil
}

// copyFile duplicates a regular file, creating or truncating dst with the
// given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Rollback can be used to abort and roll back (i.e. delete) the staged copy,
// if it hasn't been moved into place yet. It will not touch the original
// source file, nor a file that already reached the target directory.
func (i *Installer) Rollback() {
	select {
	case i.abortChannel <- true:
	default:
	}
	select {
	case <-i.abortConfirmChannel:
	case <-time.After(1 * time.Second):
	}
	i.actionLock.Lock()
	defer i.actionLock.Unlock()
	if i.staged != "" && i.moved == "" {
		if err := os.Remove(i.staged); err != nil {
			log.Printf("Error deleting '%s'", i.staged)
		}
		i.staged = ""
	}
	i.Aborted = true
	i.setStatus(InstallStatus{Aborted: true})
}

// setStatus is a non-blocking write to the status channel. If no-one is
// listening through Status() then it will simply do nothing and return.
func (i *Installer) setStatus(status InstallStatus) {
	select {
	case i.statusChannel <- status:
	case <-time.After(1 * time.Second):
	}
}

// Status returns the current installer status as an InstallStatus object.
func (i *Installer) Status() InstallStatus {
	select {
	case status := <-i.statusChannel:
		return status
	case <-time.After(1 * time.Second):
		return InstallStatus{}
	}
}

// WaitForDone returns only after the installer has finished installing,
// failed, or rolled back.
func (i *Installer) WaitForDone() {
	for {
		if status := <-i.statusChannel; status.Done || status.Aborted {
			return
		}
	}
}

// SetProgressFunction sets a callback that is invoked at the start of each
// install step.
func (i *Installer) SetProgressFunction(function func(InstallStatus)) {
	i.progressFunction = function
}

// SetConfirmFunction sets the callback that decides whether an existing file
// at the destination may be overwritten. The default declines.
func (i *Installer) SetConfirmFunction(function func(string) bool) {
	i.confirmFunction = function
}

// Error returns the error the install pipeline stopped on, if any.
func (i *Installer) Error() error { return i.err }

// Moved reports whether the staged file reached a target directory.
func (i *Installer) Moved() bool { return i.moved != "" }

// InstalledPath returns the final path of the installed file: in the target
// directory after a move, otherwise the staged path in the working directory.
func (i *Installer) InstalledPath() string {
	if i.moved != "" {
		return i.moved
	}
	return i.staged
}

// Progress returns the ratio of completed install steps as a float between
// 0.0 and 1.0, inclusive.
func (i *Installer) Progress() float64 {
	return float64(i.stepsDone) / float64(len(installStepNames))
}

// Size returns the size of the installed file in bytes.
func (i *Installer) Size() int64 { return i.totalSize }

// SizeString returns a human-readable version of Size(), appending a size
// suffix, as needed.
func (i *Installer) SizeString() string {
	size := i.Size()
	switch {
	case size < KB:
		return fmt.Sprintf("%dB", size)
	case size < MB:
		return fmt.Sprintf("%.2fKB", float64(size)/float64(KB))
	case size < GB:
		return fmt.Sprintf("%.2fMB", float64(size)/float64(MB))
	case size < TB:
		return fmt.Sprintf("%.2fGB", float64(size)/float64(GB))
	default:
		return fmt.Sprintf("%.2fTB", float64(size)/float64(TB))
	}
}
