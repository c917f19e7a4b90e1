package finder

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
)

const Extension = ".replay"

// Find walks every path and collects the replay files under it. A path can also be a
// replay file itself. Anything that can't be read is logged and skipped.
func Find(paths []string, log zerolog.Logger) []string {
	var found []string

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to read path, skipping")
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || filepath.Ext(path) != Extension {
				return nil
			}

			log.Trace().Str("path", path).Msg("Found replay")
			found = append(found, path)
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Str("path", root).Msg("Failed to walk path")
		}
	}

	log.Debug().Int("count", len(found)).Msg("Finished looking for replays")
	return found
}
