// Package config provides configuration structures and utilities for
// blackholecalc. It defines the evaluation parameters, preset files, report
// preferences and the XDG locations where runs and the history database live.
package config
