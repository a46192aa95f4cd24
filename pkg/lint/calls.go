package lint

import "github.com/yaklabco/fmtsubst/pkg/cxxsrc"

// CallCache memoizes cxxsrc.FindCalls per matcher for one file.
//
// Several rules look for the same callee with different argument shapes,
// and a single rule may query more than once. Each distinct matcher scans
// the token stream once per file.
//
// Returned slices are shared. Copy before sorting or filtering in place.
//
// CallCache is NOT thread-safe. Rules for one file run sequentially and
// each file gets its own cache.
type CallCache struct {
	file  *cxxsrc.File
	sites map[cxxsrc.CallMatcher][]cxxsrc.CallSite
}

// NewCallCache creates an empty cache for file.
func NewCallCache(file *cxxsrc.File) *CallCache {
	return &CallCache{
		file:  file,
		sites: make(map[cxxsrc.CallMatcher][]cxxsrc.CallSite),
	}
}

// Calls returns the call sites matching m, scanning on first use.
func (c *CallCache) Calls(m cxxsrc.CallMatcher) []cxxsrc.CallSite {
	if c.file == nil {
		return nil
	}
	if sites, ok := c.sites[m]; ok {
		return sites
	}
	sites := cxxsrc.FindCalls(c.file, m)
	c.sites[m] = sites
	return sites
}

// Len returns the number of distinct matchers scanned so far.
func (c *CallCache) Len() int {
	return len(c.sites)
}
