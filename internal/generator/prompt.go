package generator

import "fmt"

// buildPrompt embeds the scanned structure verbatim in the README instructions.
func buildPrompt(structure string) string {
	return fmt.Sprintf(`
Generate a README.md file for a project with the following structure:

%s

Describe the project confidently and factually based *only* on the provided file structure. Avoid speculative language like 'appears to be', 'likely', 'might be', or 'seems to'. State what the project *is* based on the structure.

The README must include:
- A definitive description of the project based on its structure.
- Instructions on how to install or set up the project (provide clear steps or placeholders if details cannot be inferred).
- Instructions on how to use the project (provide clear steps or placeholders if details cannot be inferred).
- Any other relevant sections clearly indicated by the file structure (e.g., tests, examples).

Format the output as Markdown.
`, structure)
}
