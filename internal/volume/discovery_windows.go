//go:build windows

package volume

import "golang.org/x/sys/windows"

// ListReadyNTFSVolumes enumerates every logical drive letter the OS reports
// and returns the subset that is both ready and NTFS-formatted. This is the
// default volume set when the CLI is not given --volume.
func ListReadyNTFSVolumes() ([]Info, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, err
	}

	var infos []Info
	for i := 0; i < len(driveLetters); i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		info, err := queryVolume(driveLetters[i])
		if err != nil {
			// Not ready, not present, or access denied: skip it rather
			// than fail the whole scan.
			continue
		}
		if info.Ready && info.IsNTFS() {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func queryVolume(letter byte) (Info, error) {
	root, err := windows.UTF16PtrFromString(string(letter) + `:\`)
	if err != nil {
		return Info{}, err
	}

	var (
		volumeName     [windows.MAX_PATH]uint16
		fileSystemName [windows.MAX_PATH]uint16
		serialNumber   uint32
		maxComponent   uint32
		flags          uint32
	)
	err = windows.GetVolumeInformation(
		root,
		&volumeName[0], uint32(len(volumeName)),
		&serialNumber,
		&maxComponent,
		&flags,
		&fileSystemName[0], uint32(len(fileSystemName)),
	)
	if err != nil {
		return Info{Letter: letter}, err
	}

	return Info{
		Letter:     letter,
		FileSystem: windows.UTF16ToString(fileSystemName[:]),
		Ready:      true,
	}, nil
}
