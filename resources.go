package tree_installer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	rice "github.com/GeertJohan/go.rice"
)

var resourceBox *rice.Box

// openBoxes opens the embedded resource payload.
// For go.rice's 'append' mode to work, all calls to FindBox() have to be with
// a literal string parameter.
func openBoxes() {
	var err error
	resourceBox, err = rice.FindBox("resources")
	if err != nil {
		panic(err)
	}
}

// GetResource returns the contents of a single file from the resource box.
func GetResource(name string) (string, error) {
	if resourceBox == nil {
		return "", fmt.Errorf("resource box not opened")
	}
	text, err := resourceBox.String(name)
	if err != nil {
		return "", fmt.Errorf("resource '%s' not found", name)
	}
	return text, nil
}

// MustGetResource is GetResource for resources that have to exist for the
// installer to function at all, such as the config file.
func MustGetResource(name string) string {
	text, err := GetResource(name)
	if err != nil {
		panic(err)
	}
	return text
}

// GetResourceFiltered returns the contents of all files under a resource
// directory whose paths match the given filter, as a map from path to
// content.
func GetResourceFiltered(dir string, fileFilter *regexp.Regexp) (map[string]string, error) {
	if resourceBox == nil {
		return nil, fmt.Errorf("resource box not opened")
	}
	contents := make(map[string]string)
	err := resourceBox.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || fileFilter.FindStringIndex(path) == nil {
			return nil
		}
		text, err := resourceBox.String(filepath.ToSlash(path))
		if err != nil {
			return err
		}
		contents[path] = text
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resource dir '%s' not found", dir)
	}
	return contents, nil
}

// MustGetResourceFiltered is GetResourceFiltered for resource directories
// that have to exist, such as the language string files.
func MustGetResourceFiltered(dir string, fileFilter *regexp.Regexp) map[string]string {
	contents, err := GetResourceFiltered(dir, fileFilter)
	if err != nil {
		panic(err)
	}
	return contents
}
