package llm

// Prompts live here so wording changes are a single-file edit. Keep them
// concise — every token costs money and latency.

// PromptInterpretLines asks the model to turn unparseable ingredient lines
// into the fixed {name, quantity, unit, originalText} schema. The reply
// must be a JSON array in the same order as the input lines.
const PromptInterpretLines = `You turn recipe ingredient lines into structured data.
For each input line, emit one object: {"name": string, "quantity": number or null, "unit": string or null, "originalText": string}.
"name" is the ingredient phrase without quantity or unit. Keep preparation words ("minced") in the name.
Reply with ONLY a JSON array, one element per input line, in input order. No prose, no markdown.`

// PromptClassifySections asks the model to file ingredient names into the
// seven grocery sections. The reply must be a JSON object mapping each
// input name to one section.
const PromptClassifySections = `You file grocery items into store sections.
The only valid sections are: Produce, Meat/Fish, Dry Goods, Dairy, Spices, Pantry, Other.
Reply with ONLY a JSON object mapping every input name exactly as given to one section. No prose, no markdown.`
