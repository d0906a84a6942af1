// Package app provides the application context for piratpkg.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config       *config.Config         // Branch table and settings
//	    FS           system.FileSystem      // Manifest filesystem
//	    ShellFactory manifest.ShellFactory  // Sandbox shell startup
//	    Prompter     installer.Prompter     // Confirmation prompt
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithConfig(cfg))
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithConfig(testConfig),
//	    app.WithFileSystem(mockFS),
//	    app.WithShellFactory(fakeShells),
//	)
//
// # Operations
//
//	a.Install(ctx, "hello:core")
//	a.Uninstall(ctx, "hello")
//	a.Inspect("hello")
//	a.List()
package app
