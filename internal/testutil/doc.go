// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test on
// error instead of returning it: environment variables (MustSetenv,
// MustUnsetenv, SetHomeDir), working directory (MustChdir) and fixture files
// (MustWriteFile, WriteDocument).
package testutil
