// Command rbxl-extract extracts scripts, images, sounds, models, and
// asset references from Roblox place files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	rbxlextract "github.com/pinkythegawd/Roblox-rbxl-extractor"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/batchstore"
	"github.com/pinkythegawd/Roblox-rbxl-extractor/internal/mmapbuf"
)

func main() {
	if len(os.Args) < 2 {
		os.Stdout.WriteString("usage: rbxl-extract <pattern-or-path>...\n")
		os.Exit(1)
	}

	var inputs []string
	for _, arg := range os.Args[1:] {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil || len(matches) == 0 {
			inputs = append(inputs, arg)
			continue
		}
		inputs = append(inputs, matches...)
	}

	opts := rbxlextract.DefaultOptions()
	opts.Admit = rbxlextract.NewBatchAdmission()

	store, err := openBatchStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch cache disabled: %v\n", err)
	}
	if store != nil {
		defer store.Close()
	}

	exitCode := 0
	for _, path := range inputs {
		if err := extractOne(path, opts, store); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// openBatchStore opens the on-disk extraction cache rooted at
// RBX_EXTRACT_BATCH_CACHE, or a per-user cache directory when that's
// unset. A failure to open disables the cache rather than aborting the
// run, matching mmapbuf's graceful-fallback idiom.
func openBatchStore() (*batchstore.Store, error) {
	dir := os.Getenv("RBX_EXTRACT_BATCH_CACHE")
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cacheDir, "rbxl-extract", "batchstore")
	}
	return batchstore.Open(dir)
}

func extractOne(path string, opts rbxlextract.Options, store *batchstore.Store) error {
	buf, err := mmapbuf.Load(path)
	if err != nil {
		return err
	}
	defer buf.Close()

	var key []byte
	if store != nil {
		key = batchstore.Key(buf.Bytes)
		if cached, ok, err := store.Get(key); err == nil && ok {
			if result, err := rbxlextract.UnmarshalResult(cached); err == nil {
				fmt.Printf("%s: already extracted (cached)\n", path)
				for category, count := range result.Counts() {
					fmt.Printf("%s: %s: %d\n", path, category, count)
				}
				return nil
			}
		}
	}

	outputDir := filepath.Dir(path)
	result, err := rbxlextract.Extract(buf.Bytes, outputDir, opts)
	if err != nil {
		return err
	}

	for category, count := range result.Counts() {
		fmt.Printf("%s: %s: %d\n", path, category, count)
	}

	if store != nil {
		if summary, err := result.Marshal(); err == nil {
			if err := store.Put(key, summary); err != nil {
				fmt.Fprintf(os.Stderr, "%s: batch cache write failed: %v\n", path, err)
			}
		}
	}
	return nil
}
