package scan

import "strings"

var videoExtensions = map[string]struct{}{
	"mkv": {}, "mp4": {}, "avi": {}, "m4v": {}, "webm": {},
	"flv": {}, "vob": {}, "mov": {}, "wmv": {}, "ogv": {}, "ogg": {},
}

func isVideoExt(ext string) bool {
	_, ok := videoExtensions[strings.ToLower(ext)]
	return ok
}
