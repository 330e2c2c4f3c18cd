/*
Package story contains the core domain model for the cyoa engine.

It defines the fundamental entities of a loaded story, such as Scenes, Choices,
the tagged Value union and the variable Environment, plus the guard/effect
expression evaluator. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Value: a closed tagged union (Number, String, Boolean) with checked
    comparison semantics.
  - Environment: the per-session mapping of variable names to Values.
  - Scene / Choice: nodes and guarded edges of the immutable story graph.
  - Story: the complete validated graph plus initial variable bindings.
  - View: what one reader sees of their current scene.
*/
package story
