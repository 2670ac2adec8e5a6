// Package similarity provides the normalized string comparison primitive used
// by candidate scoring.
//
// Ratio runs cheap checks first (exact equality, substring containment) before
// falling back to word-set overlap and finally a sequence-matcher ratio over
// common matching blocks. The ordering matters for both cost and score shape:
// containment short-circuits at a fixed 0.8 so noisy candidate titles that
// embed the target string verbatim rank consistently.
package similarity
