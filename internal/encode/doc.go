// Package encode turns a timeline composition into an ffmpeg invocation.
//
// The timeline package stays pure: it describes scene spans, Ken-Burns
// motion, fades, and karaoke captions as data. This package is the process
// boundary that expresses that data as an ffmpeg filter graph (zoompan,
// alpha fades, overlay chain, ASS subtitles, amix) and runs the encode.
package encode
