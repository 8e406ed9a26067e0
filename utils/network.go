package utils

import (
	"path/filepath"
	"strings"
)

const (
	// LocalCopyBuffer is used when every path is on a local disk
	LocalCopyBuffer = 32 * 1024

	// NetworkCopyBuffer trades memory for fewer round trips on network mounts
	NetworkCopyBuffer = 1024 * 1024
)

// IsNetworkDrive detects if a file path is on a network-mounted drive
func IsNetworkDrive(filePath string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	networkPrefixes := []string{
		"/mnt/",     // Linux NFS/SMB mounts
		"/media/",   // Linux removable/network media
		"/Volumes/", // macOS network volumes
	}

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	// Only whole path components count, so "/home/smbuser" is not a share
	for _, part := range strings.Split(strings.ToLower(absPath), string(filepath.Separator)) {
		switch part {
		case "nfs", "cifs", "smb", "webdav", "ftp", "sftp":
			return true
		}
	}

	return false
}

// CopyBufferSize picks the copy buffer for a merge touching paths
func CopyBufferSize(paths ...string) int {
	for _, p := range paths {
		if IsNetworkDrive(p) {
			return NetworkCopyBuffer
		}
	}
	return LocalCopyBuffer
}
