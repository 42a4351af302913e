// Package bot plays an engine.Game with a one-piece greedy search.
//
// For every turn the Finder lists candidate moves for the active piece, each
// candidate is replayed on a cloned Game, and the Evaluator scores the board
// it leaves behind. The best candidate is then replayed on the real Game.
//
//	g := engine.NewGame(seed)
//	b := bot.New(bot.WithLogger(logger))
//	placed := b.Play(g, 1000)
package bot
