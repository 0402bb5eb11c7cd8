package utils

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

var illegalPathCharsRegex = regexp.MustCompile(`[\\/:*?"<>|]`)

// Reads a line from the reader, joining the fragments of
// lines that are longer than the reader's buffer
func ReadLine(reader *bufio.Reader) ([]byte, error) {
	lineBytes, isPrefix, err := reader.ReadLine()
	if err != nil {
		return nil, err
	}

	for isPrefix {
		var moreBytes []byte
		moreBytes, isPrefix, err = reader.ReadLine()
		if err != nil {
			return nil, err
		}
		lineBytes = append(lineBytes, moreBytes...)
	}
	return lineBytes, nil
}

// checks if a file or directory exists
func PathExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return !os.IsNotExist(err)
}

// Returns the file size based on the provided file path
//
// If the file does not exist or
// there was an error opening the file at the given file path string, -1 is returned
func GetFileSize(filePath string) (int64, error) {
	if !PathExists(filePath) {
		return -1, os.ErrNotExist
	}
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return -1, err
	}
	return fileInfo.Size(), nil
}

// Removes any illegal characters in a path name
// to prevent any error with file I/O using the path name
func RemoveIllegalCharsInPathName(dirtyPathName string) string {
	dirtyPathName = strings.TrimSpace(dirtyPathName)
	return illegalPathCharsRegex.ReplaceAllString(dirtyPathName, "-")
}
