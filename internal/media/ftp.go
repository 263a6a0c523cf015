package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/rshoplabs/shopbot/internal/config"
)

// FTPUploader stores images on the shop's FTP server. Each upload opens
// a fresh session; at interactive chat rates that is simpler and safer
// than keeping a control connection alive across long idle gaps.
type FTPUploader struct {
	cfg    config.FTPConfig
	logger *slog.Logger
}

// NewFTPUploader creates an uploader for the configured FTP server.
func NewFTPUploader(log *slog.Logger, cfg config.FTPConfig) *FTPUploader {
	if log == nil {
		log = slog.Default()
	}
	return &FTPUploader{
		cfg:    cfg,
		logger: log.With(slog.String("service", "ftp")),
	}
}

// Upload stores r under name in the configured base path and returns the
// public URL. Missing path segments are created on first use.
func (u *FTPUploader) Upload(ctx context.Context, r io.Reader, name string) (string, error) {
	conn, err := ftp.Dial(u.cfg.Addr(),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(30*time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("ftp dial %s: %w", u.cfg.Addr(), err)
	}
	defer func() {
		_ = conn.Quit()
	}()

	if err := conn.Login(u.cfg.User, u.cfg.Password); err != nil {
		return "", fmt.Errorf("ftp login: %w", err)
	}
	if err := u.changeToBasePath(conn); err != nil {
		return "", err
	}
	if err := conn.Stor(name, r); err != nil {
		return "", fmt.Errorf("ftp store %s: %w", name, err)
	}

	url := strings.TrimRight(u.cfg.BaseURL, "/") + "/" + name
	u.logger.Info("file uploaded", slog.String("url", url))
	return url, nil
}

func (u *FTPUploader) changeToBasePath(conn *ftp.ServerConn) error {
	base := strings.Trim(u.cfg.BasePath, "/")
	if base == "" {
		return nil
	}
	if err := conn.ChangeDir("/" + base); err == nil {
		return nil
	}
	// Walk the path creating missing segments.
	for _, segment := range strings.Split(base, "/") {
		if err := conn.ChangeDir(segment); err != nil {
			if err := conn.MakeDir(segment); err != nil {
				return fmt.Errorf("ftp mkdir %s: %w", segment, err)
			}
			if err := conn.ChangeDir(segment); err != nil {
				return fmt.Errorf("ftp cwd %s: %w", segment, err)
			}
		}
	}
	return nil
}
