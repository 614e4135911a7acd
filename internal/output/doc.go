// Package output writes run results and live progress for loadclient.
//
// The report file has a fixed layout with no header or metadata:
//
//	0.012345
//	0.010987
//
//	Average response time: 0.011666 seconds
//
// One line per latency sample in seconds with six decimals, a blank line, and
// the arithmetic mean. An empty run reports an average of 0.
package output
