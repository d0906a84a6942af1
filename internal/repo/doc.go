// Package repo maps package addresses onto manifest files inside the
// configured repository branches.
//
// An address has the form [@]name[:branch]. Group addresses (leading '@')
// are recognised and always rejected. Without a branch qualifier every
// branch is probed in configuration order and the first existing
// <name>.pkg wins; with a qualifier only that branch is probed.
package repo
