// Command audiomatch finds and fetches the best audio rendition of requested
// tracks from the YouTube Music catalog. It offers one-shot searches, a
// persistent request queue, and a runner that drains the queue end to end.
package main
