package db

import (
	"context"
)

const migration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS identities (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email text NOT NULL,
    password_hash text,
    external_id text,
    name text NOT NULL DEFAULT '',
    avatar_url text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT identities_credential_present
        CHECK (password_hash IS NOT NULL OR external_id IS NOT NULL)
);

CREATE UNIQUE INDEX IF NOT EXISTS identities_email_lower_unique
ON identities (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS identities_external_id_unique
ON identities (external_id)
WHERE external_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS posts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    author_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    author_name text NOT NULL,
    author_avatar text NOT NULL DEFAULT '',
    body text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS post_likes (
    post_id uuid NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    identity_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    PRIMARY KEY (post_id, identity_id)
);

CREATE TABLE IF NOT EXISTS post_comments (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    post_id uuid NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    author_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    author_name text NOT NULL,
    author_avatar text NOT NULL DEFAULT '',
    body text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
    identity_id uuid PRIMARY KEY REFERENCES identities(id) ON DELETE CASCADE,
    status text NOT NULL,
    skills text[] NOT NULL DEFAULT '{}',
    company text NOT NULL DEFAULT '',
    website text NOT NULL DEFAULT '',
    location text NOT NULL DEFAULT '',
    bio text NOT NULL DEFAULT '',
    github_username text NOT NULL DEFAULT '',
    links jsonb NOT NULL DEFAULT '{}',
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profile_experience (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    identity_id uuid NOT NULL REFERENCES profiles(identity_id) ON DELETE CASCADE,
    title text NOT NULL,
    company text NOT NULL,
    from_date date NOT NULL,
    to_date date,
    current boolean NOT NULL DEFAULT false,
    description text NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS profile_education (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    identity_id uuid NOT NULL REFERENCES profiles(identity_id) ON DELETE CASCADE,
    school text NOT NULL,
    degree text NOT NULL,
    from_date date NOT NULL,
    to_date date,
    current boolean NOT NULL DEFAULT false,
    gpa numeric
);

CREATE TABLE IF NOT EXISTS jobs (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    poster_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    company text NOT NULL,
    location text NOT NULL,
    title text NOT NULL,
    remote text NOT NULL,
    employment_type text NOT NULL,
    salary_min bigint,
    salary_max bigint,
    salary_currency text NOT NULL DEFAULT '',
    description text NOT NULL,
    requirements text NOT NULL DEFAULT '',
    stack text[] NOT NULL DEFAULT '{}',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS job_applicants (
    job_id uuid NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
    identity_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    PRIMARY KEY (job_id, identity_id)
);

CREATE TABLE IF NOT EXISTS snippets (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    content text NOT NULL,
    description text NOT NULL DEFAULT '',
    language text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS files (
    name text PRIMARY KEY,
    owner_id uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    content_type text NOT NULL,
    data bytea NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);
`

// RunMigration applies the schema. Statements are idempotent so the
// migration can run on every startup.
func RunMigration(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}
