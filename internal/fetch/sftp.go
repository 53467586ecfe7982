package fetch

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// sftpReader closes the remote file, the SFTP session and the SSH
// connection, in that order.
type sftpReader struct {
	file   *sftp.File
	client *sftp.Client
	conn   *ssh.Client
}

func (r *sftpReader) Read(p []byte) (int, error) {
	return r.file.Read(p)
}

func (r *sftpReader) Close() error {
	err := r.file.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	if cerr := r.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *Client) openSFTP(u *url.URL) (io.ReadCloser, error) {
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "22")
	}

	user, pass := c.opts.SFTPUser, c.opts.SFTPPassword
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}

	hostKeys, err := c.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	conn, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(pass)},
		HostKeyCallback: hostKeys,
		Timeout:         c.opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", addr, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sftp session: %w", err)
	}

	f, err := client.Open(u.Path)
	if err != nil {
		client.Close()
		conn.Close()
		return nil, fmt.Errorf("sftp open %s: %w", u.Path, err)
	}

	return &sftpReader{file: f, client: client, conn: conn}, nil
}

func (c *Client) hostKeyCallback() (ssh.HostKeyCallback, error) {
	path := c.opts.KnownHostsFile
	if path == "" {
		path = defaultKnownHostsFile()
	}
	if path == "" {
		if !c.opts.InsecureIgnoreHostKey {
			return nil, fmt.Errorf("no known_hosts file; configure one or enable insecure host keys")
		}
		c.log.Warn().Msg("sftp host key verification disabled")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts: %w", err)
	}
	return cb, nil
}

// defaultKnownHostsFile returns ~/.ssh/known_hosts if it exists.
func defaultKnownHostsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".ssh", "known_hosts")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
