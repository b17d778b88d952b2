package anki

// schemaVersion is the collection schema version the Anki clients expect.
const schemaVersion = 11

// The DDL below reproduces the collection.anki2 layout byte for byte in
// terms of table names, column order and column types. Anki parses the
// columns positionally, so nothing here may be reordered.
const schemaSQL = `
-- Cards are what you review. There can be multiple cards per note,
-- one per template of the note's model.
CREATE TABLE cards (
    id              integer primary key,
    nid             integer not null,   -- notes.id
    did             integer not null,   -- deck id (from the col table's decks column)
    ord             integer not null,   -- template index, 0..num templates-1
    mod             integer not null,   -- modification time, epoch seconds
    usn             integer not null,   -- update sequence number, -1 = needs sync
    type            integer not null,   -- 0=new, 1=learning, 2=due, 3=filtered
    queue           integer not null,   -- scheduling queue, 0=new
    due             integer not null,
    ivl             integer not null,   -- SRS interval; negative = seconds, positive = days
    factor          integer not null,   -- SRS ease factor
    reps            integer not null,
    lapses          integer not null,
    left            integer not null,   -- reps left until graduation
    odue            integer not null,   -- original due, filtered decks only
    odid            integer not null,   -- original deck id, filtered decks only
    flags           integer not null,
    data            text not null
);

-- col holds a single row describing the whole collection. The decks,
-- models and deck option groups live as JSON text inside this row.
CREATE TABLE col (
    id              integer primary key,
    crt             integer not null,   -- created, epoch seconds
    mod             integer not null,   -- last modified, epoch milliseconds
    scm             integer not null,   -- schema modification time, epoch milliseconds
    ver             integer not null,
    dty             integer not null,   -- dirty, unused
    usn             integer not null,
    ls              integer not null,   -- last sync time
    conf            text not null,      -- JSON: synced configuration options
    models          text not null,      -- JSON: model id -> model (note type)
    decks           text not null,      -- JSON: deck id -> deck
    dconf           text not null,      -- JSON: option group id -> deck options
    tags            text not null       -- JSON: tag cache
);

-- Deleted cards, notes and decks that still need to be synced.
CREATE TABLE graves (
    usn             integer not null,
    oid             integer not null,
    type            integer not null    -- 0=card, 1=note, 2=deck
);

-- Notes hold the raw field content that cards are rendered from.
CREATE TABLE notes (
    id              integer primary key,
    guid            text not null,      -- globally unique sync identity
    mid             integer not null,   -- model id
    mod             integer not null,   -- modification time, epoch seconds
    usn             integer not null,
    tags            text not null,      -- space separated, framed by spaces for LIKE "% tag %"
    flds            text not null,      -- field values joined by 0x1f
    sfld            text not null,      -- sort field
    csum            integer not null,   -- first 8 hex digits of sha1(first field)
    flags           integer not null,
    data            text not null
);

-- Review history; always empty for freshly generated packages.
CREATE TABLE revlog (
    id              integer primary key,
    cid             integer not null,   -- cards.id
    usn             integer not null,
    ease            integer not null,   -- 1=wrong .. 4=easy
    ivl             integer not null,
    lastIvl         integer not null,
    factor          integer not null,
    time            integer not null,   -- review duration, milliseconds
    type            integer not null    -- 0=learn, 1=review, 2=relearn, 3=cram
);

ANALYZE sqlite_master;
INSERT INTO "sqlite_stat1" VALUES('col',NULL,'1');
CREATE INDEX ix_notes_usn on notes (usn);
CREATE INDEX ix_cards_usn on cards (usn);
CREATE INDEX ix_revlog_usn on revlog (usn);
CREATE INDEX ix_cards_nid on cards (nid);
CREATE INDEX ix_cards_sched on cards (did, queue, due);
CREATE INDEX ix_revlog_cid on revlog (cid);
CREATE INDEX ix_notes_csum on notes (csum);
`
