// Package argus is the client-side engine of a visual regression testing
// SDK. It captures application screenshots, normalizes them into a
// comparable coordinate space, delta-compresses them against the previous
// capture, and polls a remote comparison service until a match or the
// retry budget runs out.
//
// Typical use:
//
//	cfg := argus.LoadConfig()
//	eyes, err := argus.Open(ctx, cfg)
//	if err != nil {
//		// ...
//	}
//	defer eyes.Close()
//
//	verdict, err := eyes.CheckWindow(ctx, "login page")
//
// One check at a time: the engine retains the previous screenshot for
// delta compression, so overlapping checks on the same Eyes handle are
// not supported.
package argus
