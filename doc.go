/*
Package cyoa is a branching interactive-fiction engine. It compiles a small
story language into an immutable scene graph and runs independent reader
sessions over it, each with its own variable state.

A story is plain text: variable declarations followed by named scenes. Each
scene has a narration line and any number of choices. Choices point at other
scenes and may carry a guard that hides them and an effect that updates the
session's variables when taken.

	SET coins 3

	= START
	"You stand at the gate with {coins} coins."
	"Bribe the guard" -> Inside [IF coins > 0] [THEN coins = 0]
	"Walk away" -> Road

The engine is embeddable. The HTTP adapter in internal/adapters/httpapi and
the CLI under cmd/cyoa are thin hosts over the same API:

	eng, err := cyoa.New(source)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	id, _ := eng.Create(ctx)

	view, _ := eng.Current(ctx, id)
	for !view.GameOver {
		// Present view.DisplayText and view.Choices, read a choice ID.
		view, _ = eng.Choose(ctx, id, view.Choices[0].ID)
	}

Sessions are concurrency safe. Reads of a session may run in parallel;
choices on the same session are serialized, so concurrent conflicting
choices resolve to exactly one winner.
*/
package cyoa
