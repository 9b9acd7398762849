package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/npezzotti/forum/internal/database"
	"github.com/teris-io/shortid"
)

const (
	avatarDir          = "avatars"
	maxAvatarSize      = 5 << 20
	defaultAvatarPath  = "/static/" + database.DefaultAvatar
	mediaURLPrefix     = "/media/"
	multipartMaxMemory = 1 << 20
)

var (
	errUnsupportedAvatar = errors.New("unsupported avatar file type")
	errAvatarTooLarge    = errors.New("avatar file too large")
)

var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// avatarURL maps a stored avatar name to the URL it is served from.
func avatarURL(avatar string) string {
	if avatar == "" || avatar == database.DefaultAvatar {
		return defaultAvatarPath
	}

	return mediaURLPrefix + avatar
}

// saveAvatar writes an uploaded image under the media directory and returns
// the name to store on the user record.
func (s *ForumApp) saveAvatar(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !avatarExtensions[ext] {
		return "", errUnsupportedAvatar
	}
	if header.Size > maxAvatarSize {
		return "", errAvatarTooLarge
	}

	id, err := shortid.Generate()
	if err != nil {
		return "", fmt.Errorf("generate avatar id: %w", err)
	}

	dir := filepath.Join(s.mediaDir, avatarDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}

	name := path.Join(avatarDir, id+ext)
	dst, err := os.Create(filepath.Join(dir, id+ext))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}

	n, err := io.Copy(dst, io.LimitReader(file, maxAvatarSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n > maxAvatarSize {
		err = errAvatarTooLarge
	}
	if err != nil {
		s.removeAvatar(name)
		if errors.Is(err, errAvatarTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write avatar: %w", err)
	}

	return name, nil
}

// removeAvatar deletes an uploaded avatar. The default avatar is never removed.
func (s *ForumApp) removeAvatar(name string) {
	if name == "" || name == database.DefaultAvatar {
		return
	}

	if err := os.Remove(filepath.Join(s.mediaDir, filepath.FromSlash(name))); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Printf("remove avatar %s: %v", name, err)
	}
}
