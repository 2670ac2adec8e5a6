// Package download fetches matched tracks into the music library as audio
// files, driving yt-dlp through the go-ytdlp wrapper.
package download
