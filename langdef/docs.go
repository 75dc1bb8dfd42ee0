/*
Package langdef compiles textual grammar descriptions to grammar.Grammar.

The description language is defined in itself (see BootstrapSource, the embedded grammar.cag file);
the compiler matches descriptions with a hand-built copy of that grammar (see Bootstrap)
and builds rules from the resulting capture values.

Description is a UTF-8 text consisting of statements, pragmas, and comments.
Whitespace and comments (# to end of line) may appear between any two items.

Statement has a form:
   rule-name = expression ... ;

Rule name is a dotted identifier (e.g. expr.term). Statement body is a whitespace-insensitive sequence
of expressions. Each rule may be used as a matching entry point, rules may refer to rules defined later.
Rule may be defined only once.

Pragma has a form:
   $type argument text up to end of line

Pragmas are collected in Result.Pragmas and have no effect on compilation.

Expression is an optional capture prefix followed by a term:
   (a b c)      sequence; insignificant text is skipped between items
   {a b c}      whitespace-sensitive sequence
   [a b c]      alternation; the first matching variant wins
   N-M a        repetition, N defaults to 0, M to unbounded (e.g. -a, 1-a, 0-3a); text is skipped between items
   N~M a        whitespace-sensitive repetition
   "text" 'text'  literal; escapes: \\ \" \' \a \b \f \n \r \t \v \xHH \uHHHH \UHHHHHHHH \ooo
   N/regexp/ims   regular expression, N selects capturing group used as result, flags: i, m, s
   !            commit: failure of any later item of the enclosing sequence is fatal
   <word> <"text">  constant, matches nothing and yields its text
   @rule-name   rule reference

Regular expressions are passed to the regexp engine as is, slashes must be escaped with backslashes.

Capture prefixes determine the result of the enclosing sequence:
   name:  the sequence yields a mapping of all named items
   :      the sequence yields the result of the last anonymous item
   ^:     the item result is discarded
A sequence with no named and no anonymous items yields a list of its items' results.
Named and anonymous items cannot be mixed in one sequence.

E.g.
   $entry assignment
   assignment = name:@ident "=" ! value:[@number @ident] ";";
   ident = :1/([A-Za-z_]\w*)/;
   number = :/[0-9]+/;

matches "x = 42;" yielding mapping {name: "x", value: "42"}; "x = ;" is a fatal error
because of the commit after "=". Pattern 1/([A-Za-z_]\w*)/ yields the text of its first group.
*/
package langdef
