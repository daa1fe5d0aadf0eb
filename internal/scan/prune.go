package scan

import "github.com/MimeLyc/flicks/internal/vfs"

const peerSizeThreshold = 0.40

// prunePeers implements peer-size pruning (spec §4.4.2): for each
// parseable video whose parent differs from the import root, every
// descendant of that parent sized at or below 40% of the video's size is
// ignored. candidates is the video file handle; parseable reports which
// candidates had a parseable filename.
func prunePeers(root vfs.File, candidates []vfs.File, parseable []bool) map[string]struct{} {
	ignored := make(map[string]struct{})

	for i, video := range candidates {
		if !parseable[i] {
			continue
		}
		parent, ok := video.Parent()
		if !ok || parent.Path() == root.Path() {
			continue
		}

		ref := video.Size()
		if ref == 0 {
			continue
		}

		for _, d := range parent.Descendants() {
			if d.IsDir() {
				continue
			}
			if float64(d.Size())/float64(ref) <= peerSizeThreshold {
				ignored[d.Path()] = struct{}{}
			}
		}
	}

	return ignored
}
