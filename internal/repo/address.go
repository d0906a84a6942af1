package repo

import (
	"strings"

	"github.com/piraterna/piratpkg/internal/config"
	"github.com/piraterna/piratpkg/internal/errors"
)

// ManifestExt is the file extension of package manifests.
const ManifestExt = ".pkg"

// Address is a parsed package address.
type Address struct {
	Name   string
	Branch string
	Group  bool
}

// String formats the address back into its textual form.
func (a Address) String() string {
	s := a.Name
	if a.Group {
		s = "@" + s
	}
	if a.Branch != "" {
		s += ":" + a.Branch
	}
	return s
}

// ParseAddress parses raw into an Address. Group addresses fail with
// GroupsUnsupported.
func ParseAddress(raw string) (Address, error) {
	if raw == "" {
		return Address{}, errors.InvalidAddress(raw, "empty")
	}
	if strings.HasPrefix(raw, "@") {
		return Address{}, errors.GroupsUnsupported(raw)
	}

	name, branch, qualified := strings.Cut(raw, ":")
	if name == "" {
		return Address{}, errors.InvalidAddress(raw, "empty package name")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return Address{}, errors.InvalidAddress(raw, "package name must not contain path elements")
	}
	if qualified {
		if branch == "" {
			return Address{}, errors.InvalidAddress(raw, "empty branch name")
		}
		if err := config.ValidateBranchName(branch); err != nil {
			return Address{}, errors.InvalidAddress(raw, err.Error())
		}
	}

	return Address{Name: name, Branch: branch}, nil
}
