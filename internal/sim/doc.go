// Package sim provides an in-memory compositor that hosts the sliding
// notifications effect. It tracks windows, outputs, lifetime tokens and
// repaint requests, and drives the effect's paint hooks frame by frame.
package sim
