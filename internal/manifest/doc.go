// Package manifest parses package manifests and builds the package context
// that the installer drives.
//
// A manifest is line oriented:
//
//	PACKAGE_NAME=foo
//	PACKAGE_VERSION=1.0
//	CFLAGS=-O2
//	build() {
//	    ./configure --prefix="$PREFIX"
//	    make
//	}
//
// Every KEY=VALUE line is also exported into the sandbox environment.
// Function blocks are captured with a quote-aware brace counter and only
// bodies for the fixed lifecycle stages are kept. A REDIRECT=<address>
// line abandons the current file and restarts on the target.
//
// Load resolves an address, follows redirects, injects PIRATPKG_VERSION and
// PREFIX, and attaches a sandbox shell to the returned Package. The caller
// owns the Package and must Close it.
package manifest
